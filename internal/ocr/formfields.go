package ocr

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const maxFieldDepth = 8

// FormValue is a filled AcroForm field. Digitally filled PDFs carry their
// values here rather than in the page content, so neither OCR of embedded
// images nor the text layer sees them.
type FormValue struct {
	Name  string
	Value string
}

func formValues(ctx *model.Context) []FormValue {
	root, err := ctx.Catalog()
	if err != nil {
		return nil
	}
	acroObj, found := root.Find("AcroForm")
	if !found {
		return nil
	}
	acro, err := ctx.DereferenceDict(acroObj)
	if err != nil || acro == nil {
		return nil
	}
	fieldsObj, found := acro.Find("Fields")
	if !found {
		return nil
	}
	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil
	}

	var out []FormValue
	for _, f := range fields {
		out = collectField(ctx, f, "", 0, out)
	}
	return out
}

func collectField(ctx *model.Context, obj types.Object, parent string, depth int, out []FormValue) []FormValue {
	if depth > maxFieldDepth {
		return out
	}
	d, err := ctx.DereferenceDict(obj)
	if err != nil || d == nil {
		return out
	}

	name := parent
	if t, found := d.Find("T"); found {
		if partial, err := ctx.DereferenceStringOrHexLiteral(t, model.V10, nil); err == nil && partial != "" {
			if name != "" {
				name += "."
			}
			name += partial
		}
	}

	if v, found := d.Find("V"); found {
		if value := fieldValue(ctx, v); value != "" {
			out = append(out, FormValue{Name: name, Value: value})
		}
	}

	if kidsObj, found := d.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
			for _, k := range kids {
				out = collectField(ctx, k, name, depth+1, out)
			}
		}
	}
	return out
}

func fieldValue(ctx *model.Context, v types.Object) string {
	if s, err := ctx.DereferenceStringOrHexLiteral(v, model.V10, nil); err == nil {
		return strings.TrimSpace(s)
	}
	if n, err := ctx.DereferenceName(v, model.V10, nil); err == nil && n != "Off" {
		return string(n)
	}
	return ""
}
