package memhost

import (
	"fmt"

	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/host"
)

// Parameter is an in-memory port.
type Parameter struct {
	name       string
	nick       string
	access     string
	mapping    string
	flags      map[host.Modifier]bool
	expression string
	data       *datatree.Tree
}

// NewParameter returns an item-access parameter with no mapping.
func NewParameter(name string) *Parameter {
	return &Parameter{
		name:    name,
		nick:    name,
		access:  "item",
		mapping: "none",
		flags:   make(map[host.Modifier]bool),
	}
}

func (p *Parameter) Name() string           { return p.name }
func (p *Parameter) NickName() string       { return p.nick }
func (p *Parameter) SetNickName(n string)   { p.nick = n }
func (p *Parameter) Access() string         { return p.access }
func (p *Parameter) DataMapping() string    { return p.mapping }
func (p *Parameter) Expression() string     { return p.expression }
func (p *Parameter) SetExpression(e string) { p.expression = e }

func (p *Parameter) SetAccess(a string) error {
	switch a {
	case "item", "list", "tree":
		p.access = a
		return nil
	}
	return fmt.Errorf("parameter %s: invalid access %q", p.name, a)
}

func (p *Parameter) SetDataMapping(m string) error {
	switch m {
	case "none", "flatten", "graft":
		p.mapping = m
		return nil
	}
	return fmt.Errorf("parameter %s: invalid data mapping %q", p.name, m)
}

func (p *Parameter) Flag(m host.Modifier) bool        { return p.flags[m] }
func (p *Parameter) SetFlag(m host.Modifier, on bool) { p.flags[m] = on }

func (p *Parameter) PersistentData() *datatree.Tree     { return p.data }
func (p *Parameter) SetPersistentData(t *datatree.Tree) { p.data = t }
