package scenarios

import (
	"slices"
	"strings"

	"pom_automation/application/pages"
	"pom_automation/application/pages/sauce"
	"pom_automation/domain/entities"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sauceUser          = "standard_user"
	sauceLockedUser    = "locked_out_user"
	saucePassword      = "secret_sauce"
	sauceBackpack      = "Sauce Labs Backpack"
	sauceBoltTShirt    = "Sauce Labs Bolt T-Shirt"
	sauceBikeLight     = "Sauce Labs Bike Light"
	sauceWrongPassword = "wrong_password"
)

func sauceScenarios() []Scenario {
	list := []Scenario{
		{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "sauce/valid-login",
				Site:        entities.SiteSauceDemo,
				Description: "Standard user logs in, sees products and logs out",
			},
			Run: sauceValidLogin,
		},
		{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "sauce/invalid-password",
				Site:        entities.SiteSauceDemo,
				Description: "Wrong password shows the mismatch error",
			},
			Run: sauceInvalidPassword,
		},
		{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "sauce/locked-out-user",
				Site:        entities.SiteSauceDemo,
				Description: "Locked out user is refused",
			},
			Run: sauceLockedOut,
		},
	}
	for _, option := range entities.SortOptions {
		list = append(list, Scenario{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "sauce/sort-" + string(option),
				Site:        entities.SiteSauceDemo,
				Description: "Sort the inventory by " + string(option),
				Tags:        []string{"sort"},
			},
			Run: sauceSort(option),
		})
	}
	return append(list,
		Scenario{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "sauce/cart-add-remove",
				Site:        entities.SiteSauceDemo,
				Description: "Add two products, remove one from the cart",
			},
			Run: sauceCartAddRemove,
		},
		Scenario{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "sauce/checkout",
				Site:        entities.SiteSauceDemo,
				Description: "Complete end-to-end checkout flow",
			},
			Run: sauceCheckout,
		},
	)
}

// sauceLogin opens the store, logs in as the standard user and returns the
// inventory once products show
func sauceLogin(t T, env *Env) *sauce.InventoryPage {
	t.Helper()
	login := sauce.NewLoginPage(env.Pages, env.URL(entities.SiteSauceDemo))
	require.NoError(t, login.Open(env.Ctx))
	require.NoError(t, login.Login(env.Ctx, sauceUser, saucePassword))

	inventory := sauce.NewInventoryPage(env.Pages)
	n, err := inventory.ProductCount(env.Ctx)
	require.NoError(t, err)
	require.Positive(t, n, "inventory should list products after login")
	return inventory
}

func sauceValidLogin(t T, env *Env) {
	inventory := sauceLogin(t, env)
	require.NoError(t, inventory.Logout(env.Ctx))

	login := sauce.NewLoginPage(env.Pages, env.URL(entities.SiteSauceDemo))
	assert.False(t, login.IsErrorMessageDisplayed(env.Ctx))
}

func sauceRejected(t T, env *Env, user, password, want string) {
	t.Helper()
	login := sauce.NewLoginPage(env.Pages, env.URL(entities.SiteSauceDemo))
	require.NoError(t, login.Open(env.Ctx))
	require.NoError(t, login.Login(env.Ctx, user, password))

	msg, err := login.ErrorMessage(env.Ctx)
	require.NoError(t, err)
	assert.Contains(t, msg, want)
}

func sauceInvalidPassword(t T, env *Env) {
	sauceRejected(t, env, sauceUser, sauceWrongPassword, "Username and password do not match")
}

func sauceLockedOut(t T, env *Env) {
	sauceRejected(t, env, sauceLockedUser, saucePassword, "locked out")
}

func sauceSort(option entities.SortOption) func(T, *Env) {
	return func(t T, env *Env) {
		inventory := sauceLogin(t, env)
		before, err := inventory.ProductNames(env.Ctx)
		require.NoError(t, err)
		beforePrices, err := inventory.ProductPrices(env.Ctx)
		require.NoError(t, err)
		require.NotEmpty(t, before)

		require.NoError(t, inventory.SortProducts(env.Ctx, option))

		names, err := inventory.ProductNames(env.Ctx)
		require.NoError(t, err)
		prices, err := inventory.ProductPrices(env.Ctx)
		require.NoError(t, err)
		assert.True(t, option.IsOrdered(names, prices), "products not ordered by %s: %v %v", option, names, prices)

		// sorting reorders the same products, it never adds or drops one
		switch option {
		case entities.SortNameAsc, entities.SortNameDesc:
			want := slices.Sorted(slices.Values(before))
			if option == entities.SortNameDesc {
				slices.Reverse(want)
			}
			assert.Empty(t, cmp.Diff(want, names), "names after sorting by %s", option)
		default:
			want := slices.Sorted(slices.Values(beforePrices))
			if option == entities.SortPriceDesc {
				slices.Reverse(want)
			}
			assert.Empty(t, cmp.Diff(want, prices), "prices after sorting by %s", option)
		}
	}
}

func sauceCartAddRemove(t T, env *Env) {
	ctx := env.Ctx
	inventory := sauceLogin(t, env)

	for i, product := range []string{sauceBackpack, sauceBoltTShirt} {
		require.NoError(t, inventory.AddProductToCart(ctx, product))
		n, err := inventory.CartItemCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, i+1, n)
	}
	require.NoError(t, inventory.GoToCart(ctx))

	cart := sauce.NewCartPage(env.Pages)
	n, err := cart.ItemCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, cart.RemoveItem(ctx, sauceBackpack))
	n, err = cart.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	names, err := cart.ItemNames(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, sauceBackpack)
	assert.Contains(t, names, sauceBoltTShirt)

	require.NoError(t, cart.ContinueShopping(ctx))
	n, err = inventory.ProductCount(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)
}

func sauceCheckout(t T, env *Env) {
	ctx := env.Ctx
	inventory := sauceLogin(t, env)

	for _, product := range []string{sauceBackpack, sauceBikeLight} {
		require.NoError(t, inventory.AddProductToCart(ctx, product))
	}
	n, err := inventory.CartItemCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NoError(t, inventory.GoToCart(ctx))

	cart := sauce.NewCartPage(env.Pages)
	names, err := cart.ItemNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{sauceBackpack, sauceBikeLight}, names)
	require.NoError(t, cart.ProceedToCheckout(ctx))

	info := sauce.NewCheckoutInfoPage(env.Pages)
	require.NoError(t, info.FillCheckoutInfo(ctx, "Test", "User", "12345"))
	require.NoError(t, info.Continue(ctx))

	overview := sauce.NewCheckoutOverviewPage(env.Pages)
	subtotal, err := overview.Subtotal(ctx)
	require.NoError(t, err)
	tax, err := overview.Tax(ctx)
	require.NoError(t, err)
	total, err := pages.SafeExecuteValue(ctx, overview, "Reading order total", overview.Total)
	require.NoError(t, err)
	assert.Positive(t, subtotal)
	assert.Positive(t, tax)
	assert.InDelta(t, subtotal+tax, total, 0.01)
	require.NoError(t, overview.Finish(ctx))

	complete := sauce.NewCheckoutCompletePage(env.Pages)
	header, err := complete.Header(ctx)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(header), "thank you")

	require.NoError(t, complete.BackToHome(ctx))
	n, err = inventory.ProductCount(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)
}
