// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package console renders the human-readable startup output: a banner and
// one summary table per project.
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// Banner writes the startup banner.
func Banner(w io.Writer, version, addr string, projects int) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"DebiAI Data Provider", version})
	table.Append([]string{"API Server", "http://" + addr})
	table.Append([]string{"Number of Projects", strconv.Itoa(projects)})
	table.Render()
}

// Summary writes the structure, sample count and models of e. Parts the
// project cannot describe are shown as unknown; a failing call is reported
// in the table instead of aborting it.
func Summary(ctx context.Context, w io.Writer, e *project.Exposure) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	table.SetHeader([]string{e.Name(), ""})

	columns, err := e.Columns(ctx)
	switch {
	case err != nil:
		table.Append([]string{"Structure:", "error: " + err.Error()})
	case columns != nil:
		table.Append([]string{"Structure:", ""})
		for _, c := range columns {
			table.Append([]string{c.Name, describeColumn(c)})
		}
	}

	results, err := e.ResultColumns(ctx)
	if err == nil && len(results) > 0 {
		table.Append([]string{"Results:", ""})
		for _, c := range results {
			table.Append([]string{c.Name, describeColumn(c)})
		}
	}

	n, known, err := e.SampleCount(ctx)
	switch {
	case err != nil:
		table.Append([]string{"NB samples:", "error: " + err.Error()})
	case known:
		table.Append([]string{"NB samples:", strconv.Itoa(n)})
	default:
		table.Append([]string{"NB samples:", "unknown"})
	}

	if e.Capabilities().Models {
		if models, err := e.Models(ctx); err == nil {
			names := make([]string, len(models))
			for i, m := range models {
				names[i] = fmt.Sprintf("%s (%d)", m.Name, m.ResultCount)
			}
			table.Append([]string{"Models:", strings.Join(names, ", ")})
		}
	}

	table.Render()
}

func describeColumn(c project.Column) string {
	typ := string(c.Type)
	if c.Type == project.TypeAuto {
		typ = "auto"
	}
	s := typ + " " + string(c.Category)
	if c.Group != "" {
		s += " [" + c.Group + "]"
	}
	return s
}

// Capabilities writes which optional operations e supports.
func Capabilities(w io.Writer, e *project.Exposure) {
	c := e.Capabilities()
	rows := []struct {
		op string
		ok bool
	}{
		{"structure", c.Structure},
		{"results structure", c.ResultsStructure},
		{"sample count", c.SampleCount},
		{"sample ids", c.SampleIDs},
		{"data", c.Data},
		{"models", c.Models},
		{"evaluated ids", c.EvaluatedIDs},
		{"model results", c.ModelResults},
		{"delete project", c.DeleteProject},
		{"delete model", c.DeleteModel},
		{"selections", c.Selections},
		{"create selection", c.CreateSelection},
		{"delete selection", c.DeleteSelection},
		{"creation date", c.CreationDate},
		{"update date", c.UpdateDate},
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Operation", "Supported"})
	for _, r := range rows {
		mark := "no"
		if r.ok {
			mark = "yes"
		}
		table.Append([]string{r.op, mark})
	}
	table.Render()
}
