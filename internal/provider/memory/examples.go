// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package memory

import "github.com/tomtom215/debiai-data-provider/internal/project"

func exampleSamples() *project.Table {
	return project.NewTable(project.StringIDs("image-1", "image-2", "image-3")).
		MustSetColumn("My context 1", "A", "B", "C").
		MustSetColumn("My context 2", 0.28, 0.388, 0.5).
		MustSetColumn("My groundtruth 1", 8, 7, 19).
		MustSetColumn("input", 100, 200, 128)
}

func exampleStructure() project.Structure {
	return project.Structure{
		{Name: "My context 1", Attrs: project.Attrs{"type": "text", "category": "context", "group": "context"}},
		{Name: "My context 2", Attrs: project.Attrs{"type": "number", "category": "context", "group": "context"}},
		{Name: "My groundtruth 1", Attrs: project.Attrs{"type": "number", "category": "groundtruth"}},
	}
}

// MyProject is the bundled example project without model results.
func MyProject() *Project {
	p, err := New("MyProject", exampleSamples(),
		WithStructure(exampleStructure()),
		WithDates("2024-01-01", ""),
	)
	if err != nil {
		panic(err)
	}
	return p
}

// MyProjectWithResults is MyProject with two evaluated models.
func MyProjectWithResults() *Project {
	results := project.NewTable(project.StringIDs("image-1", "image-1", "image-2", "image-2")).
		MustSetColumn("model", "model_1", "model_2", "model_1", "model_2").
		MustSetColumn("prediction", 10, 12, 8, 5).
		MustSetColumn("confidence", 0.8, 0.9, 0.7, 0.6).
		MustSetColumn("error", 2, 4, 1, -2).
		MustSetColumn("error_abs", 2, 4, 1, 2)

	resultsStructure := project.Structure{
		{Name: "prediction", Attrs: project.Attrs{"type": "number"}},
		{Name: "confidence", Attrs: project.Attrs{"type": "number"}},
		{Name: "error", Attrs: project.Attrs{"type": "number", "group": "error"}},
		{Name: "error_abs", Attrs: project.Attrs{"type": "number", "group": "error"}},
	}

	p, err := New("MyProjectWithResults", exampleSamples(),
		WithStructure(exampleStructure()),
		WithResults(resultsStructure, results, "model"),
		WithDates("2024-01-01", ""),
	)
	if err != nil {
		panic(err)
	}
	return p
}

// Examples returns fresh instances of the bundled example projects.
func Examples() []*Project {
	return []*Project{MyProject(), MyProjectWithResults()}
}
