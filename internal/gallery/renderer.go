package gallery

import (
	"fmt"
	"html/template"

	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/render"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Name   string
	Active bool
	Count  int
}

// CopyAction is the copy affordance of a card with raw content.
type CopyAction struct {
	CardID string
	URL    string
}

// Link is the navigational link of a card.
type Link struct {
	URL string
}

// CardView is the rendered form of a card. Copy and Link are nil when the
// card has no raw content URL or no link URL respectively.
type CardView struct {
	ID          string
	ImageSrc    string
	Title       string
	Content     string
	Description template.HTML
	Copy        *CopyAction
	Link        *Link
}

// Panel holds the cards of one category. Only the active panel is visible.
type Panel struct {
	Name    string
	Visible bool
	Cards   []CardView
}

// View is the complete render tree for one (catalog, active category) pair.
type View struct {
	Active string
	Tabs   []Tab
	Cards  []CardView
	Panels []Panel
}

// Renderer turns catalog state into a View. It holds no mutable state.
type Renderer struct {
	md *render.Markdown
}

// NewRenderer creates a Renderer. With a nil md, descriptions are
// HTML-escaped plain text.
func NewRenderer(md *render.Markdown) *Renderer {
	return &Renderer{md: md}
}

// Render builds the view for the active category.
func (r *Renderer) Render(cat *domain.Catalog, active string) (View, error) {
	if !cat.Has(active) {
		return View{}, fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, active)
	}

	v := View{Active: active}
	for _, name := range cat.Names() {
		cards, err := cat.Cards(name)
		if err != nil {
			return View{}, err
		}
		views, err := r.Cards(cards)
		if err != nil {
			return View{}, err
		}

		isActive := name == active
		v.Tabs = append(v.Tabs, Tab{Name: name, Active: isActive, Count: len(cards)})
		v.Panels = append(v.Panels, Panel{Name: name, Visible: isActive, Cards: views})
		if isActive {
			v.Cards = views
		}
	}
	return v, nil
}

// Cards renders a card sequence in order.
func (r *Renderer) Cards(cards []domain.Card) ([]CardView, error) {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		cv, err := r.card(c)
		if err != nil {
			return nil, fmt.Errorf("render card %q: %w", c.ID, err)
		}
		out = append(out, cv)
	}
	return out, nil
}

func (r *Renderer) card(c domain.Card) (CardView, error) {
	cv := CardView{
		ID:       c.ID,
		ImageSrc: c.ImageSrc,
		Title:    c.Title,
		Content:  c.Content,
	}

	if r.md != nil {
		desc, err := r.md.HTML(c.Content)
		if err != nil {
			return CardView{}, err
		}
		cv.Description = desc
	} else {
		cv.Description = template.HTML(template.HTMLEscapeString(c.Content))
	}

	if c.HasRawContent() {
		cv.Copy = &CopyAction{CardID: c.ID, URL: c.RawContentURL}
	}
	if c.HasLink() {
		cv.Link = &Link{URL: c.LinkURL}
	}
	return cv, nil
}
