// Package schema defines the import profiles this deployment recognizes.
//
// Each profile fixes the literal header spellings, sentinel strings, and
// record defaults for one front-end locale. The variant lists below are the
// exhaustive set of spellings the operator can rely on; a header outside
// them fails the import with a message quoting exactly these lists.
package schema

import "github.com/code-and-relax/studio/internal/engine"

// Palette is the fixed set of note colors the studio front-end offers.
// New records default to the first entry.
var Palette = []string{
	"F5E960", // yellow
	"A7F3D0", // mint
	"BFDBFE", // sky
	"FBCFE8", // pink
	"FDBA74", // orange
	"DDD6FE", // lilac
}

func init() {
	engine.Register(engine.Profile{
		Key:   "studio",
		Label: "Studio (català)",
		Termini: engine.FieldSpec{
			Name:     "#TERMINI",
			Variants: []string{"TERMINI", "#TERMINIS", "TERMINIS"},
		},
		Content: engine.FieldSpec{
			Name: "#DOCUMENTS/ACCIONS",
			Variants: []string{
				"DOCUMENTS/ACCIONS", "#DOCUMENTS", "DOCUMENTS",
				"#ACCIONS", "ACCIONS",
			},
			Required: true,
		},
		DueDate: engine.FieldSpec{
			Name: "#DATA A FER",
			Variants: []string{
				"DATA A FER", "#DATA", "DATA", "#DATA LIMIT", "DATA LIMIT",
			},
			Required: true,
		},
		Sentinels: engine.NewSentinelSet(
			"#VALUE!", "-", "",
			"no especificat", "no especificada",
			"desconegut", "desconeguda",
			"no aplica",
		),
		TerminiFallback: "No aplica",
		DefaultColor:    Palette[0],
	})

	engine.Register(engine.Profile{
		Key:   "english",
		Label: "English",
		Termini: engine.FieldSpec{
			Name:     "#DEADLINE",
			Variants: []string{"DEADLINE", "#TERM", "TERM"},
		},
		Content: engine.FieldSpec{
			Name:     "#TASK",
			Variants: []string{"TASK", "#ACTION", "ACTION", "#DESCRIPTION", "DESCRIPTION"},
			Required: true,
		},
		DueDate: engine.FieldSpec{
			Name:     "#DUE DATE",
			Variants: []string{"DUE DATE", "#DUE", "DUE", "#DATE", "DATE"},
			Required: true,
		},
		Sentinels: engine.NewSentinelSet(
			"#VALUE!", "-", "",
			"not specified", "unknown", "n/a", "not applicable",
		),
		TerminiFallback: "N/A",
		DefaultColor:    Palette[0],
	})
}
