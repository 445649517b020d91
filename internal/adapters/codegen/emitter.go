package codegen

import (
	"fmt"
	"go/format"
	"strings"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/zerr"
)

// unifyImport is the runtime package generated code links against.
const unifyImport = domain.RuntimeModulePath + "/unify"

// Render produces the generated file for pkg.
func Render(pkg *domain.DeclPackage, tagged []domain.TaggedDecl, meta domain.GenerateMeta) ([]byte, error) {
	var b strings.Builder

	b.WriteString("// Code generated by kindred gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg.Name)
	fmt.Fprintf(&b, "import %q\n\n", unifyImport)

	b.WriteString("// KindredOutDir is the build output directory the state table was exported to.\n")
	fmt.Fprintf(&b, "const KindredOutDir = %q\n\n", meta.OutDir)
	b.WriteString("// KindredToolchain is the toolchain fingerprint the tags below were derived with.\n")
	fmt.Fprintf(&b, "const KindredToolchain = %q\n", meta.Toolchain)

	for _, t := range tagged {
		recv := t.Name
		if len(t.TypeParams) > 0 {
			recv += "[" + strings.Join(t.TypeParams, ", ") + "]"
		}
		tagConst := "kindredTag" + t.Name
		cellVar := "kindredCell" + t.Name

		fmt.Fprintf(&b, "\n// %s is %s.\n", tagConst, t.DeclPath)
		fmt.Fprintf(&b, "const %s unify.TypeTag = 0x%016x\n\n", tagConst, uint64(t.Tag))
		fmt.Fprintf(&b, "var %s unify.LazyCell\n\n", cellVar)
		b.WriteString("// KindredTag implements unify.Tagged.\n")
		fmt.Fprintf(&b, "func (%s) KindredTag() unify.TypeTag { return %s }\n\n", recv, tagConst)
		b.WriteString("// KindredDeclPath implements unify.Tagged.\n")
		fmt.Fprintf(&b, "func (%s) KindredDeclPath() string { return %q }\n\n", recv, t.DeclPath)
		b.WriteString("// KindredCell implements unify.Class.\n")
		fmt.Fprintf(&b, "func (%s) KindredCell() unify.Cell { return &%s }\n", recv, cellVar)
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to format generated source"), "package", pkg.Name)
	}
	return src, nil
}
