package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wa-resolver/internal/app"
)

type resolveOptions struct {
	Kind         string
	Owner        string
	Path         string
	Abi          string
	Filename     string
	Stage        string
	Target       string
	Variant      string
	Versions     []string
	MinVersion   string
	MaxVersion   string
	Package      string
	UIAuto       bool
	ExactAbi     bool
	SupportedAbi []string
	Lenient      bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a resource request to a concrete path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Resource kind: file, executable, revent, jar, apk")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Owner the resource belongs to (empty for no owner)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Relative path (file resources)")
	cmd.Flags().StringVar(&opts.Abi, "abi", "", "Target ABI (executable resources)")
	cmd.Flags().StringVar(&opts.Filename, "filename", "", "Executable filename")
	cmd.Flags().StringVar(&opts.Stage, "stage", "", "Workload stage (revent resources)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "Target device name (revent resources)")
	cmd.Flags().StringVar(&opts.Variant, "variant", "", "Apk variant name or pattern")
	cmd.Flags().StringSliceVar(&opts.Versions, "version", nil, "Acceptable apk version(s)")
	cmd.Flags().StringVar(&opts.MinVersion, "min-version", "", "Minimum apk version (inclusive)")
	cmd.Flags().StringVar(&opts.MaxVersion, "max-version", "", "Maximum apk version (inclusive)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Exact apk package id")
	cmd.Flags().BoolVar(&opts.UIAuto, "uiauto", false, "Request a UI-automation test apk")
	cmd.Flags().BoolVar(&opts.ExactAbi, "exact-abi", false, "Require the primary ABI to be present")
	cmd.Flags().StringSliceVar(&opts.SupportedAbi, "supported-abi", nil, "ABIs supported by the target")
	cmd.Flags().BoolVar(&opts.Lenient, "lenient", false, "Report not-found instead of failing")

	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func runResolve(ctx context.Context, opts resolveOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Resolve(ctx, app.ResolveRequest{
		Kind:         opts.Kind,
		Owner:        opts.Owner,
		Path:         opts.Path,
		Abi:          opts.Abi,
		Filename:     opts.Filename,
		Stage:        opts.Stage,
		Target:       opts.Target,
		Variant:      opts.Variant,
		Versions:     opts.Versions,
		MinVersion:   opts.MinVersion,
		MaxVersion:   opts.MaxVersion,
		Package:      opts.Package,
		UIAuto:       opts.UIAuto,
		ExactAbi:     opts.ExactAbi,
		SupportedAbi: opts.SupportedAbi,
		Strict:       !opts.Lenient,
	})
	if err != nil {
		return err
	}
	if !result.Found {
		fmt.Println("not found")
		return nil
	}
	fmt.Println(result.Path)
	return nil
}
