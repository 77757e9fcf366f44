// Package resources describes the content API's admin collections and
// exposes list, lookup and mutation operations over them.
package resources

import (
	"slices"
	"strings"

	"github.com/JaimeStill/backoffice/pkg/formdata"
)

// Operation names an endpoint a resource may support.
type Operation string

const (
	OpList   Operation = "list"
	OpFind   Operation = "find"
	OpAdd    Operation = "add"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpToggle Operation = "toggle"
	OpResume Operation = "resume"
)

// Endpoints holds content API paths. "{id}" is replaced with the record id.
type Endpoints struct {
	List   string `json:"list"`
	Find   string `json:"find,omitempty"`
	Add    string `json:"add,omitempty"`
	Update string `json:"update,omitempty"`
	Delete string `json:"delete,omitempty"`
	Toggle string `json:"toggle,omitempty"`
	Resume string `json:"resume,omitempty"`
}

// Slot is a file field on a resource form. Sources are the record fields
// that hold the stored asset paths.
type Slot struct {
	Name    string        `json:"name"`
	Sources []string      `json:"sources"`
	Form    formdata.Slot `json:"form"`
	Accept  string        `json:"accept,omitempty"`
}

// Definition describes one admin collection.
type Definition struct {
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Endpoints    Endpoints `json:"endpoints"`
	SearchFields []string  `json:"search_fields"`
	SortFields   []string  `json:"sort_fields"`
	Columns      []string  `json:"columns"`
	PageSize     int       `json:"page_size"`
	Slots        []Slot    `json:"slots,omitempty"`
	HTMLFields   []string  `json:"html_fields,omitempty"`
}

// Supports reports whether the content API exposes op for the resource.
func (d Definition) Supports(op Operation) bool {
	return d.endpoint(op) != ""
}

// Operations lists the supported operations in a fixed order.
func (d Definition) Operations() []Operation {
	var ops []Operation
	for _, op := range []Operation{OpList, OpFind, OpAdd, OpUpdate, OpDelete, OpToggle, OpResume} {
		if d.Supports(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// Path returns the endpoint for op with id substituted.
func (d Definition) Path(op Operation, id string) (string, error) {
	tmpl := d.endpoint(op)
	if tmpl == "" {
		return "", unsupported(d.Name, op)
	}
	return strings.ReplaceAll(tmpl, "{id}", id), nil
}

// Slot returns the named file slot.
func (d Definition) Slot(name string) (Slot, bool) {
	i := slices.IndexFunc(d.Slots, func(s Slot) bool { return s.Name == name })
	if i < 0 {
		return Slot{}, false
	}
	return d.Slots[i], true
}

func (d Definition) endpoint(op Operation) string {
	switch op {
	case OpList:
		return d.Endpoints.List
	case OpFind:
		// records without a find endpoint are located in the list
		if d.Endpoints.Find != "" {
			return d.Endpoints.Find
		}
		return d.Endpoints.List
	case OpAdd:
		return d.Endpoints.Add
	case OpUpdate:
		return d.Endpoints.Update
	case OpDelete:
		return d.Endpoints.Delete
	case OpToggle:
		return d.Endpoints.Toggle
	case OpResume:
		return d.Endpoints.Resume
	}
	return ""
}
