package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"wa-resolver/internal/types"
)

// ResolveRequest describes one resource to resolve, as collected from
// the command line. Kind selects the variant; the other fields apply to
// the kinds that use them.
type ResolveRequest struct {
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
	Strict       bool
}

type ResolveResult struct {
	Path  string
	Found bool
}

// Resolve loads the default getter catalog (once per service) and
// resolves the requested resource.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	res, err := buildResource(req)
	if err != nil {
		return ResolveResult{}, err
	}
	if err := s.Resolver.Load(ctx, s.Getters); err != nil {
		return ResolveResult{}, err
	}
	path, err := s.Resolver.Resolve(ctx, res, req.Strict)
	if err != nil {
		return ResolveResult{}, err
	}
	return ResolveResult{Path: path, Found: path != ""}, nil
}

// buildResource validates the request and constructs the concrete
// resource variant.
func buildResource(req ResolveRequest) (types.Resource, error) {
	owner := strings.TrimSpace(req.Owner)
	switch types.ResourceKind(strings.TrimSpace(req.Kind)) {
	case types.KindFile:
		if req.Path == "" {
			return nil, invalidRequest("file resources require --path")
		}
		return types.File{OwnerName: owner, Path: req.Path}, nil
	case types.KindExecutable:
		if req.Filename == "" {
			return nil, invalidRequest("executable resources require --filename")
		}
		return types.Executable{OwnerName: owner, Abi: req.Abi, Filename: req.Filename}, nil
	case types.KindRevent:
		if req.Stage == "" {
			return nil, invalidRequest("revent resources require --stage")
		}
		return types.ReventFile{OwnerName: owner, Stage: req.Stage, Target: req.Target}, nil
	case types.KindJar:
		return types.JarFile{OwnerName: owner}, nil
	case types.KindApk:
		return types.ApkFile{
			OwnerName:    owner,
			Variant:      req.Variant,
			Version:      req.Versions,
			MinVersion:   req.MinVersion,
			MaxVersion:   req.MaxVersion,
			Package:      req.Package,
			UIAuto:       req.UIAuto,
			ExactAbi:     req.ExactAbi,
			SupportedAbi: req.SupportedAbi,
		}, nil
	default:
		return nil, invalidRequest(fmt.Sprintf("unknown resource kind: %q", req.Kind))
	}
}

func invalidRequest(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
