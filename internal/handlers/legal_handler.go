package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	supportEmail string
}

func NewLegalHandler(supportEmail string) *LegalHandler {
	if supportEmail == "" {
		supportEmail = "support@resqr.co.in"
	}
	return &LegalHandler{supportEmail: supportEmail}
}

func (h *LegalHandler) page(c *fiber.Ctx, title, body string) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>` + title + ` - RESQR</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>` + title + `</h1>
` + body + `
<h2>Contact</h2>
<p>For questions, contact us at ` + h.supportEmail + `</p>
</body></html>`)
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return h.page(c, "Privacy Policy", `<p>Effective Date: March 1, 2026</p>
<p>At RESQR we prioritize your safety and the privacy of your sensitive medical data. This policy outlines how we handle your personal information.</p>
<h2>Information Collection</h2>
<p>We collect medical details, emergency contacts and personal identifiers provided by you to create your RESQR profile. This information is only accessed when your QR tag is scanned.</p>
<h2>Data Storage</h2>
<p>We do not sell or trade your personal medical history with third-party advertising networks.</p>
<h2>Your Control</h2>
<p>You can edit or deactivate your profile at any time through the dashboard.</p>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return h.page(c, "Terms of Service", `<p>Version 1.2, February 2026</p>
<p>By using RESQR, you agree to the following terms governing our safety services.</p>
<h2>Professional Disclaimer</h2>
<p>RESQR is an information-sharing platform. We are NOT a medical emergency service. We cannot guarantee the specific actions taken by medical personnel upon scanning your tag.</p>
<h2>Accuracy of Information</h2>
<p>You are solely responsible for the accuracy of the medical information and contacts stored in your profile.</p>
<h2>Service Duration</h2>
<p>The digital profile remains active for the lifetime of the service, subject to a one-time activation fee. Physical tags remain your property once delivered.</p>`)
}

func (h *LegalHandler) RefundPolicy(c *fiber.Ctx) error {
	return h.page(c, "Refund Policy", `<h2>Cancellations</h2>
<p>Digital QR services can be cancelled within 24 hours for a full refund if the profile has not been activated. Physical product orders can be cancelled before they enter the shipping stage.</p>
<h2>Refunds</h2>
<p>Refunds are processed within 5-7 business days to the original payment source. Physical products are only eligible for refund if received damaged.</p>`)
}

func (h *LegalHandler) ShippingPolicy(c *fiber.Ctx) error {
	return h.page(c, "Shipping Policy", `<h2>Dispatch</h2>
<p>All physical products are dispatched within 2 business days of order confirmation. Custom engravings may take an additional 24 hours.</p>
<h2>Delivery</h2>
<p>Domestic shipping (India): 3-5 business days. Remote areas may take up to 7 business days.</p>`)
}
