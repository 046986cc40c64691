package domain

import (
	"maps"
	"slices"
)

// Element is the tracked state of one DOM node, relative to how the landing
// page template serves it.
type Element struct {
	HTML    *string  `json:"html,omitempty"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Gone    bool     `json:"gone,omitempty"`
}

// Page is the materialized DOM state of one landing page.
type Page struct {
	DocumentTitle  *string             `json:"document_title,omitempty"`
	Player         *Player             `json:"player,omitempty"`
	PlayersCreated int                 `json:"players_created"`
	Elements       map[string]*Element `json:"elements"`
}

func NewPage() *Page {
	return &Page{Elements: make(map[string]*Element)}
}

func (p *Page) element(id string) *Element {
	if p.Elements == nil {
		p.Elements = make(map[string]*Element)
	}

	el, ok := p.Elements[id]
	if !ok {
		el = &Element{}
		p.Elements[id] = el
	}

	return el
}

func (p *Page) IsGone(id string) bool {
	el, ok := p.Elements[id]
	return ok && el.Gone
}

// HTML returns the inner html set on id, or "" when none was set.
func (p *Page) HTML(id string) string {
	el, ok := p.Elements[id]
	if !ok || el.HTML == nil {
		return ""
	}

	return *el.HTML
}

// HasClass reports whether a command added class to id.
func (p *Page) HasClass(id, class string) bool {
	el, ok := p.Elements[id]
	return ok && slices.Contains(el.Added, class)
}

func (p *Page) ClassRemoved(id, class string) bool {
	el, ok := p.Elements[id]
	return ok && slices.Contains(el.Removed, class)
}

// Apply mutates the page. Applying the same commands twice leaves the page
// unchanged, and a player is created at most once.
func (p *Page) Apply(cmds ...Command) {
	for _, cmd := range cmds {
		switch cmd.Op {
		case OpCreatePlayer:
			if p.Player != nil || cmd.Player == nil || p.IsGone(cmd.Target) {
				continue
			}
			player := *cmd.Player
			p.Player = &player
			p.PlayersCreated++
		case OpSetDocumentTitle:
			title := cmd.Value
			p.DocumentTitle = &title
		case OpSetHTML:
			if p.IsGone(cmd.Target) {
				continue
			}
			html := cmd.Value
			p.element(cmd.Target).HTML = &html
		case OpRemove:
			p.element(cmd.Target).Gone = true
		case OpAddClass:
			if p.IsGone(cmd.Target) {
				continue
			}
			el := p.element(cmd.Target)
			for _, c := range cmd.Classes {
				el.Added = insertSorted(el.Added, c)
				el.Removed = deleteSorted(el.Removed, c)
			}
		case OpRemoveClass:
			if p.IsGone(cmd.Target) {
				continue
			}
			el := p.element(cmd.Target)
			for _, c := range cmd.Classes {
				el.Removed = insertSorted(el.Removed, c)
				el.Added = deleteSorted(el.Added, c)
			}
		case OpClearStyle:
			// layout is per viewer and never part of the shared page
		}
	}
}

// Replay returns commands that rebuild this page on a freshly served
// template.
func (p *Page) Replay() []Command {
	cmds := make([]Command, 0, len(p.Elements)*2+2)

	if p.Player != nil && !p.IsGone(p.Player.MountID) {
		cmds = append(cmds, CreatePlayer(*p.Player))
	}

	if p.DocumentTitle != nil {
		cmds = append(cmds, SetDocumentTitle(*p.DocumentTitle))
	}

	for _, id := range slices.Sorted(maps.Keys(p.Elements)) {
		el := p.Elements[id]
		if el.Gone {
			cmds = append(cmds, Remove(id))
			continue
		}
		if el.HTML != nil {
			cmds = append(cmds, SetHTML(id, *el.HTML))
		}
		if len(el.Added) > 0 {
			cmds = append(cmds, AddClass(id, slices.Clone(el.Added)...))
		}
		if len(el.Removed) > 0 {
			cmds = append(cmds, RemoveClass(id, slices.Clone(el.Removed)...))
		}
	}

	return cmds
}

func (p *Page) Clone() *Page {
	c := &Page{
		PlayersCreated: p.PlayersCreated,
		Elements:       make(map[string]*Element, len(p.Elements)),
	}
	if p.DocumentTitle != nil {
		title := *p.DocumentTitle
		c.DocumentTitle = &title
	}
	if p.Player != nil {
		player := *p.Player
		if p.Player.PlayerVars != nil {
			vars := *p.Player.PlayerVars
			player.PlayerVars = &vars
		}
		c.Player = &player
	}
	for id, el := range p.Elements {
		cel := &Element{
			Added:   slices.Clone(el.Added),
			Removed: slices.Clone(el.Removed),
			Gone:    el.Gone,
		}
		if el.HTML != nil {
			html := *el.HTML
			cel.HTML = &html
		}
		c.Elements[id] = cel
	}

	return c
}

func insertSorted(s []string, v string) []string {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s
	}

	return slices.Insert(s, i, v)
}

func deleteSorted(s []string, v string) []string {
	i, found := slices.BinarySearch(s, v)
	if !found {
		return s
	}

	return slices.Delete(s, i, i+1)
}
