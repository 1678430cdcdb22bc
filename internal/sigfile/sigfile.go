// Package sigfile loads user-defined signatures from an HCL database file,
// the extension point for package managers whence does not know about.
//
// A database file holds signature blocks:
//
//	signature "corp-cli" {
//	  manager     = "corp"
//	  name        = "Corp Installer"
//	  platforms   = ["linux", "darwin"]
//	  contains    = ["${home}/.corp/tools/"]
//	  pattern     = "/\\.corp/tools/(?P<package>[^/]+)/(?P<version>[^/]+)/"
//	  specificity = 80
//	}
package sigfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/z0mbix/whence/internal/platform"
	"github.com/z0mbix/whence/internal/signature"
)

type database struct {
	Signatures []block `hcl:"signature,block"`
}

type block struct {
	Label       string   `hcl:"label,label"`
	Manager     string   `hcl:"manager"`
	Name        string   `hcl:"name,optional"`
	Platforms   []string `hcl:"platforms,optional"`
	Contains    []string `hcl:"contains,optional"`
	Prefixes    []string `hcl:"prefixes,optional"`
	Pattern     string   `hcl:"pattern,optional"`
	Specificity int      `hcl:"specificity,optional"`
}

// Load parses an HCL signature database file. The returned signatures are
// meant to be registered ahead of the built-ins.
func Load(path string) ([]signature.Signature, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature database: %w", err)
	}
	return parse(src, path)
}

func parse(src []byte, filename string) ([]signature.Signature, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}

	var db database
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &db); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", filename, diags.Error())
	}

	sigs := make([]signature.Signature, 0, len(db.Signatures))
	for _, b := range db.Signatures {
		sig, err := newUserSignature(b)
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", b.Label, err)
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// evalContext exposes a few convenience variables to predicate expressions.
func evalContext() *hcl.EvalContext {
	home, _ := os.UserHomeDir()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":     cty.StringVal(home),
			"platform": cty.StringVal(platform.Current().String()),
		},
	}
}

// userSignature is a signature built from a database file block.
type userSignature struct {
	id          string
	name        string
	platforms   []platform.Platform
	contains    []string
	prefixes    []string
	pattern     *regexp.Regexp
	specificity int
}

func newUserSignature(b block) (*userSignature, error) {
	if b.Manager == "" {
		return nil, fmt.Errorf("manager is required")
	}
	if len(b.Contains) == 0 && len(b.Prefixes) == 0 && b.Pattern == "" {
		return nil, fmt.Errorf("at least one of contains, prefixes or pattern is required")
	}

	s := &userSignature{
		id:          strings.ToLower(b.Manager),
		name:        b.Name,
		contains:    b.Contains,
		prefixes:    b.Prefixes,
		specificity: b.Specificity,
	}
	if s.name == "" {
		s.name = b.Manager
	}
	if s.specificity == 0 {
		s.specificity = signature.SpecificityStrong
	}
	for _, p := range b.Platforms {
		parsed, ok := platform.Parse(p)
		if !ok {
			return nil, fmt.Errorf("unknown platform %q", p)
		}
		s.platforms = append(s.platforms, parsed)
	}
	if b.Pattern != "" {
		re, err := regexp.Compile(b.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		s.pattern = re
	}
	return s, nil
}

func (s *userSignature) ID() string   { return s.id }
func (s *userSignature) Name() string { return s.name }

func (s *userSignature) Supports(p platform.Platform) bool {
	if len(s.platforms) == 0 {
		return true
	}
	for _, sp := range s.platforms {
		if sp == p {
			return true
		}
	}
	return false
}

func (s *userSignature) Match(path string, ctx signature.Context) *signature.Candidate {
	matched := false
	for _, frag := range s.contains {
		if strings.Contains(path, frag) {
			matched = true
			break
		}
	}
	for _, prefix := range s.prefixes {
		if matched {
			break
		}
		if strings.HasPrefix(path, prefix) {
			matched = true
		}
	}

	cand := &signature.Candidate{
		ManagerID:   s.id,
		ManagerName: s.name,
		Path:        path,
		Specificity: s.specificity,
	}

	if s.pattern != nil {
		m := s.pattern.FindStringSubmatch(path)
		if m == nil {
			if !matched {
				return nil
			}
			return cand
		}
		for i, group := range s.pattern.SubexpNames() {
			switch group {
			case "package":
				cand.Package = m[i]
			case "version":
				cand.Version = m[i]
			}
		}
		return cand
	}

	if !matched {
		return nil
	}
	return cand
}
