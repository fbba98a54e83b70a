package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
)

const waBase = "https://wa.me/"

// Message renders the order text sent to the shop over WhatsApp. The
// reference line and the customer block are only added when set.
func Message(s cart.Summary, info *address.DeliveryInfo, ref string) string {
	lines := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, fmt.Sprintf("• %s x%d = %d DH", l.Product.Name, l.Quantity, l.LineTotal()))
	}

	delivery := fmt.Sprintf("%d DH", s.DeliveryFee)
	if s.FreeDelivery {
		delivery = "GRATUITE 🎉"
	}

	var b strings.Builder
	b.WriteString("🌹 *Nouvelle Commande R Z Parfum*\n\n")
	if ref != "" {
		fmt.Fprintf(&b, "🧾 Réf: %s\n\n", ref)
	}
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n📦 Sous-total: %d DH", s.Subtotal)
	fmt.Fprintf(&b, "\n🚚 Livraison: %s", delivery)
	fmt.Fprintf(&b, "\n💰 *Total: %d DH*", s.Total)

	if info != nil && !info.IsZero() {
		n := info.Normalize()
		fmt.Fprintf(&b, "\n\n👤 Nom: %s\n📞 Téléphone: %s\n🏙️ Ville: %s\n📍 Adresse: %s",
			n.Name, n.Phone, n.City, n.Address)
	}

	b.WriteString("\n\n✨ Je souhaite passer cette commande.")
	return b.String()
}

// componentFixer turns url.QueryEscape output into encodeURIComponent output:
// spaces become %20 and the marks !'()* stay literal.
var componentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s for use in a URI component.
func EncodeComponent(s string) string {
	return componentFixer.Replace(url.QueryEscape(s))
}

// Link builds the click-to-chat URL for number with message prefilled.
func Link(number, message string) string {
	digits := strings.NewReplacer("+", "", " ", "").Replace(number)
	return waBase + digits + "?text=" + EncodeComponent(message)
}

// ContactLink opens a chat with a Moroccan customer phone written in the
// local format, e.g. "06 41 97 35 45".
func ContactLink(phone string) string {
	p := strings.Join(strings.Fields(phone), "")
	p = strings.TrimPrefix(p, "0")
	return waBase + "212" + p
}
