// Package share builds pre-filled share messages and share-intent URLs for
// a calculated footprint. It performs no network calls.
package share

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSite is the site advertised in share messages.
const DefaultSite = "ecotrip.com"

// Target identifies a share destination.
type Target string

const (
	TargetWhatsApp  Target = "whatsapp"
	TargetTwitter   Target = "twitter"
	TargetFacebook  Target = "facebook"
	TargetClipboard Target = "clipboard"
)

// Link is a ready-to-open share intent.
type Link struct {
	Target  Target `json:"target"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// Sharer formats share messages for one advertised site.
type Sharer struct {
	site string
}

// NewSharer creates a Sharer advertising site. An empty site uses DefaultSite.
func NewSharer(site string) *Sharer {
	if site == "" {
		site = DefaultSite
	}
	return &Sharer{site: site}
}

// FormatTotal renders an annual footprint the way it is displayed: rounded to
// a whole number of kilograms.
func FormatTotal(annualKg float64) string {
	if math.IsNaN(annualKg) || math.IsInf(annualKg, 0) || annualKg < 0 {
		annualKg = 0
	}
	return strconv.FormatFloat(math.Round(annualKg), 'f', 0, 64)
}

// WhatsApp returns the WhatsApp share intent for a formatted total.
func (s *Sharer) WhatsApp(total string) Link {
	msg := fmt.Sprintf("Descobri minha pegada de carbono: %s kg CO2e/ano! 🌍 Calcule a sua em %s e veja como reduzir seu impacto ambiental. 🌱", total, s.site)
	return Link{
		Target:  TargetWhatsApp,
		Message: msg,
		URL:     "https://wa.me/?text=" + escapeComponent(msg),
	}
}

// Twitter returns the Twitter (X) share intent for a formatted total.
func (s *Sharer) Twitter(total string) Link {
	msg := fmt.Sprintf("Acabo de calcular minha pegada de carbono: %s kg CO2e/ano! 🌍 Você já conhece a sua? Teste em %s #SustainabilityMatters", total, s.site)
	return Link{
		Target:  TargetTwitter,
		Message: msg,
		URL:     "https://twitter.com/intent/tweet?text=" + escapeComponent(msg),
	}
}

// Facebook returns the Facebook sharer intent for a formatted total.
func (s *Sharer) Facebook(total string) Link {
	msg := fmt.Sprintf("Descobri que minha pegada de carbono é de %s kg CO2e por ano. Você sabe qual é a sua? Faça o teste e descubra como reduzir seu impacto!", total)
	return Link{
		Target:  TargetFacebook,
		Message: msg,
		URL:     "https://www.facebook.com/sharer/sharer.php?quote=" + escapeComponent(msg),
	}
}

// Clipboard returns the message copied by the "copy" action.
func (s *Sharer) Clipboard(total string) Link {
	return Link{
		Target:  TargetClipboard,
		Message: fmt.Sprintf("Minha pegada de carbono é de %s kg CO2e por ano. Calcule a sua em %s! 🌱", total, s.site),
	}
}

// componentUnescaper restores the characters that URI components leave
// literal but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s as a URI component: spaces become %20
// and only A-Z a-z 0-9 - _ . ! ~ * ' ( ) stay literal.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Links returns every share target for an annual footprint in kgCO2e.
func (s *Sharer) Links(annualKg float64) []Link {
	total := FormatTotal(annualKg)
	return []Link{
		s.WhatsApp(total),
		s.Twitter(total),
		s.Facebook(total),
		s.Clipboard(total),
	}
}

// Link returns the share intent for a single target.
func (s *Sharer) Link(target Target, annualKg float64) (Link, error) {
	total := FormatTotal(annualKg)
	switch target {
	case TargetWhatsApp:
		return s.WhatsApp(total), nil
	case TargetTwitter:
		return s.Twitter(total), nil
	case TargetFacebook:
		return s.Facebook(total), nil
	case TargetClipboard:
		return s.Clipboard(total), nil
	default:
		return Link{}, fmt.Errorf("unknown share target %q", target)
	}
}
