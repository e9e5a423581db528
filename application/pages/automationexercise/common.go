// Package automationexercise holds the page objects for the Automation
// Exercise store: catalogue, signup and login, cart and checkout.
package automationexercise

import (
	"context"
	"strings"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// selectors shared by every page of the site
const (
	modalContent     entities.Selector = ".modal-content"
	modalContinue    entities.Selector = ".modal-footer .btn-success"
	modalViewCart    entities.Selector = ".modal-footer .btn-primary"
	searchInput      entities.Selector = "#search_product"
	searchButton     entities.Selector = "#submit_search"
	successAlert     entities.Selector = ".alert-success"
	scrollToEndJS                      = `() => { window.scrollTo(0, document.body.scrollHeight); return true; }`
	scrollToReviewJS                   = `() => { const el = document.querySelector('a[href="#reviews"]'); if (el) el.scrollIntoView(); return !!el; }`
)

// siteURL joins base and path with exactly one slash
func siteURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func open(ctx context.Context, p interfaces.ElementInteractions, url string) error {
	if err := p.Navigate(ctx, url); err != nil {
		return err
	}
	return p.WaitForPageLoad(ctx)
}

func search(ctx context.Context, p interfaces.ElementInteractions, term string) error {
	p.Logger().Infof("Searching for product: %s", term)
	if err := p.FillInput(ctx, searchInput, term); err != nil {
		return err
	}
	return p.ClickAndWait(ctx, searchButton)
}

// addToCart hovers the product card, clicks its button and waits for the
// confirmation modal
func addToCart(ctx context.Context, p interfaces.ElementInteractions, card, button entities.Selector) error {
	if err := p.Hover(ctx, card); err != nil {
		return err
	}
	if err := p.Click(ctx, button); err != nil {
		return err
	}
	return p.WaitForElementVisible(ctx, modalContent, 0)
}

// trimLabel strips a "Label:" prefix from a detail line
func trimLabel(text, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, label+":"))
}
