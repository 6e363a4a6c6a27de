package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/armature/pkg/body"
	"github.com/chazu/armature/pkg/kintree"
	"github.com/chazu/armature/pkg/world"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Armature script source before passing it
// to zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: add-box -> add_box
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := strings.ReplaceAll(string(b[i+1:j]), "-", "_")
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// ---------------------------------------------------------------------------
// Sexp wrappers
// ---------------------------------------------------------------------------

// sexpVec3 wraps a kintree.Vec3 so it can be passed between builtins.
type sexpVec3 struct {
	vec kintree.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}

func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a kintree.Vec3 from a (vec3 ...) result.
func toVec3(s zygo.Sexp) (kintree.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return kintree.Vec3{}, fmt.Errorf("expected (vec3 x y z), got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builder state
// ---------------------------------------------------------------------------

// defaultRootLink is the root link name used when a script does not
// name one.
const defaultRootLink = "base_link"

// builderState accumulates world mutations while a script runs.
type builderState struct {
	w *world.World
}

func newBuilderState() *builderState {
	return &builderState{}
}

// initRobot creates the world around a fresh single-link robot.
func (st *builderState) initRobot(name, root string) error {
	if st.w != nil {
		return fmt.Errorf("robot already declared")
	}
	t, err := kintree.New(name, []*kintree.Link{{Name: root}}, nil)
	if err != nil {
		return err
	}
	st.w = world.NewWorld(t)
	return nil
}

// ensureWorld returns the world, creating a default robot if the
// script never declared one.
func (st *builderState) ensureWorld() *world.World {
	if st.w == nil {
		if err := st.initRobot("robot", defaultRootLink); err != nil {
			panic(fmt.Sprintf("engine: default robot: %v", err))
		}
	}
	return st.w
}

// buildWorld returns the final world model.
func (st *builderState) buildWorld() *world.World {
	return st.ensureWorld()
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// registerBuiltins installs the Armature script vocabulary into a
// zygomys environment. The builtins mutate st as the script runs.
func registerBuiltins(env *zygo.Zlisp, st *builderState) {
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 expects 3 numbers, got %d args", len(args))
		}
		var out [3]float64
		for i, a := range args {
			v, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3 component %d: %w", i, err)
			}
			out[i] = v
		}
		return &sexpVec3{vec: kintree.Vec3{X: out[0], Y: out[1], Z: out[2]}}, nil
	})

	env.AddFunction("robot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("robot expects a name")
		}
		rname, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("robot name: %w", err)
		}
		root := defaultRootLink
		if s, ok := pa.kw["root"]; ok {
			if root, err = toString(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("robot :root: %w", err)
			}
		}
		if err := st.initRobot(rname, root); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	env.AddFunction("add_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, pa, err := oneNameArg("add-box", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		size := kintree.Vec3{X: 1, Y: 1, Z: 1}
		if s, ok := pa.kw["size"]; ok {
			if size, err = toVec3(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("add-box :size: %w", err)
			}
		}
		d := body.Primitive{Name: bname, Shape: body.ShapeBox, Dimensions: []float64{size.X, size.Y, size.Z}}
		return zygo.SexpNull, st.ensureWorld().AddBody(d)
	})

	env.AddFunction("add_sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, pa, err := oneNameArg("add-sphere", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		radius := 1.0
		if s, ok := pa.kw["radius"]; ok {
			if radius, err = toFloat64(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("add-sphere :radius: %w", err)
			}
		}
		d := body.Primitive{Name: bname, Shape: body.ShapeSphere, Dimensions: []float64{radius}}
		return zygo.SexpNull, st.ensureWorld().AddBody(d)
	})

	env.AddFunction("add_cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, pa, err := oneNameArg("add-cylinder", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, length := 1.0, 1.0
		if s, ok := pa.kw["radius"]; ok {
			if radius, err = toFloat64(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("add-cylinder :radius: %w", err)
			}
		}
		if s, ok := pa.kw["length"]; ok {
			if length, err = toFloat64(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("add-cylinder :length: %w", err)
			}
		}
		d := body.Primitive{Name: bname, Shape: body.ShapeCylinder, Dimensions: []float64{radius, length}}
		return zygo.SexpNull, st.ensureWorld().AddBody(d)
	})

	env.AddFunction("add_mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, pa, err := oneNameArg("add-mesh", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, ok := pa.kw["resource"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("add-mesh requires :resource")
		}
		resource, err := toString(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-mesh :resource: %w", err)
		}
		d := body.MeshBody{Name: bname, Resource: resource}
		return zygo.SexpNull, st.ensureWorld().AddBody(d)
	})

	env.AddFunction("add_urdf", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, pa, err := oneNameArg("add-urdf", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, ok := pa.kw["document"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("add-urdf requires :document")
		}
		doc, err := toString(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-urdf :document: %w", err)
		}
		d := body.Assembly{Name: bname, Document: doc}
		return zygo.SexpNull, st.ensureWorld().AddBody(d)
	})

	env.AddFunction("attach", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, pa, err := oneNameArg("attach", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, ok := pa.kw["parent"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("attach requires :parent")
		}
		parent, err := toString(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attach :parent: %w", err)
		}
		var origin kintree.Transform
		if s, ok := pa.kw["at"]; ok {
			if origin.Translation, err = toVec3(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("attach :at: %w", err)
			}
		}
		if s, ok := pa.kw["rpy"]; ok {
			if origin.RPY, err = toVec3(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("attach :rpy: %w", err)
			}
		}
		return zygo.SexpNull, st.ensureWorld().AttachBody(bname, parent, origin)
	})

	env.AddFunction("detach", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, _, err := oneNameArg("detach", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, st.ensureWorld().DetachBody(bname)
	})

	env.AddFunction("remove", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		bname, _, err := oneNameArg("remove", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, st.ensureWorld().RemoveBody(bname)
	})

	env.AddFunction("clear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		st.ensureWorld().Clear()
		return zygo.SexpNull, nil
	})
}

// oneNameArg parses the common builtin shape: one positional name plus
// keyword arguments.
func oneNameArg(builtin string, args []zygo.Sexp) (string, kwArgs, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		return "", pa, fmt.Errorf("%s expects a name, got %d positional args", builtin, len(pa.positional))
	}
	name, err := toString(pa.positional[0])
	if err != nil {
		return "", pa, fmt.Errorf("%s name: %w", builtin, err)
	}
	return name, pa, nil
}
