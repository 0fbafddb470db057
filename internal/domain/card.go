package domain

import "strings"

// Card is one gallery entry describing an externally hosted SQL script.
type Card struct {
	ID            string
	ImageSrc      string
	Title         string
	Content       string
	LinkURL       string // empty when the card has no link
	RawContentURL string // empty when the card has no copy action
}

// HasLink reports whether the card carries a navigational link.
func (c Card) HasLink() bool {
	return strings.TrimSpace(c.LinkURL) != ""
}

// HasRawContent reports whether the card exposes a copy action.
func (c Card) HasRawContent() bool {
	return strings.TrimSpace(c.RawContentURL) != ""
}

// Category is a named, ordered group of cards shown under one tab.
type Category struct {
	Name  string
	Cards []Card
}
