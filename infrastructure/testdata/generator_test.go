package testdata

import (
	"math/rand"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

func newFixed(seed int64) *Generator {
	return NewGeneratorWith(rand.New(rand.NewSource(seed)), func() time.Time { return fixedNow })
}

func TestRandomString(t *testing.T) {
	g := newFixed(1)
	for _, n := range []int{0, 1, 8, 64} {
		s := g.RandomString(n)
		assert.Len(t, s, n)
		assert.Regexp(t, `^[A-Za-z0-9]*$`, s)
	}
}

func TestSameSeedSameOutput(t *testing.T) {
	assert.Equal(t, newFixed(42).RandomString(16), newFixed(42).RandomString(16))
	assert.Equal(t, newFixed(42).CreateRandomUser(), newFixed(42).CreateRandomUser())
}

func TestRandomEmail(t *testing.T) {
	g := newFixed(1)
	ms := strconv.FormatInt(fixedNow.UnixMilli(), 10)

	assert.Regexp(t, `^test\.[A-Za-z0-9]{6}\.`+ms+`@example\.com$`, g.RandomEmail(""))
	assert.Regexp(t, `@corp\.test$`, g.RandomEmail("corp.test"))
}

func TestRandomPhoneNumber(t *testing.T) {
	g := newFixed(7)
	re := regexp.MustCompile(`^(\d{3})-(\d{3})-(\d{4})$`)
	for i := 0; i < 200; i++ {
		m := re.FindStringSubmatch(g.RandomPhoneNumber())
		require.NotNil(t, m)
		area, _ := strconv.Atoi(m[1])
		line, _ := strconv.Atoi(m[3])
		assert.GreaterOrEqual(t, area, 100)
		assert.GreaterOrEqual(t, line, 1000)
	}
}

func TestRandomAddress(t *testing.T) {
	g := newFixed(3)
	for i := 0; i < 100; i++ {
		a := g.RandomAddress()
		assert.Contains(t, streets, a.Street)
		assert.Contains(t, cities, a.City)
		assert.Contains(t, states, a.State)
		assert.Equal(t, "United States", a.Country)
		zip, err := strconv.Atoi(a.ZipCode)
		require.NoError(t, err)
		assert.True(t, zip >= 10000 && zip <= 99999, zip)
	}
}

func TestRandomCreditCard(t *testing.T) {
	g := newFixed(5)
	for i := 0; i < 100; i++ {
		c := g.RandomCreditCard()
		assert.Contains(t, testCardNumbers, c.CardNumber)
		assert.Regexp(t, `^(0[1-9]|1[0-2])$`, c.ExpiryMonth)
		year, err := strconv.Atoi(c.ExpiryYear)
		require.NoError(t, err)
		assert.True(t, year >= 2025 && year <= 2029, year)
		assert.Len(t, c.CVV, 3)
		assert.Regexp(t, `^[A-Z][a-z]+ [A-Z][a-z]+$`, c.NameOnCard)
	}
}

func TestCreateRandomUser(t *testing.T) {
	g := newFixed(9)
	u := g.CreateRandomUser()

	assert.Regexp(t, `^user_[0-9a-f]{8}$`, u.Username)
	assert.Regexp(t, `^Pass_[0-9a-f]{8}$`, u.Password)
	assert.Equal(t, "test_"+strconv.FormatInt(fixedNow.UnixMilli(), 10)+"@example.com", u.Email)
	assert.Empty(t, u.Subscription)
	assert.False(t, u.PaymentVerified)
}

func TestCreatePremiumUser(t *testing.T) {
	u := newFixed(9).CreatePremiumUser()
	assert.Equal(t, "premium", u.Subscription)
	assert.True(t, u.PaymentVerified)
	assert.Regexp(t, `^user_`, u.Username)
}

func TestRegistrationIdentity(t *testing.T) {
	ms := strconv.FormatInt(fixedNow.UnixMilli(), 10)
	c := newFixed(1).RegistrationIdentity("Checkout")

	assert.Equal(t, "Checkout User "+ms, c.Name)
	assert.Equal(t, "checkoutuser"+ms+"@example.com", c.Email)
	assert.Equal(t, "Test@123", c.Password)
}

func TestPick(t *testing.T) {
	g := newFixed(7)
	terms := []string{"dress", "top", "tshirt", "men"}
	for range 20 {
		assert.Contains(t, terms, g.Pick(terms))
	}
}
