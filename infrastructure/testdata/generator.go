// Package testdata produces randomized fixtures for the scenarios. Every
// value comes from an injected source so tests can pin the output.
package testdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pom_automation/domain/entities"

	"github.com/google/uuid"
)

const (
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultEmailDomain is used when RandomEmail gets an empty domain
	DefaultEmailDomain = "example.com"

	// RegistrationPassword is the fixed password of registered scenario users
	RegistrationPassword = "Test@123"
)

var (
	firstNames = []string{
		"John", "Jane", "Michael", "Emily", "David", "Sarah", "Robert", "Emma",
		"William", "Olivia", "James", "Sophia", "Benjamin", "Isabella", "Daniel", "Mia",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller", "Wilson",
		"Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin",
	}
	streets = []string{
		"123 Main St", "456 Oak Ave", "789 Pine Blvd", "101 Maple Dr",
		"202 Cedar Ln", "303 Elm St", "404 Birch Rd", "505 Willow Way",
	}
	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston",
		"Phoenix", "Philadelphia", "San Antonio", "San Diego",
	}
	states = []string{"NY", "CA", "IL", "TX", "AZ", "PA", "FL", "OH"}

	// Visa, Mastercard, American Express, Discover
	testCardNumbers = []string{
		"4111111111111111",
		"5555555555554444",
		"378282246310005",
		"6011111111111117",
	}
)

// Generator - randomized fixture source. Not safe for concurrent use since
// *rand.Rand is not.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewGenerator - creates a generator seeded from the wall clock
func NewGenerator() *Generator {
	return NewGeneratorWith(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewGeneratorWith - creates a generator over explicit randomness and clock
func NewGeneratorWith(r *rand.Rand, now func() time.Time) *Generator {
	return &Generator{rand: r, now: now}
}

func (g *Generator) epochMillis() int64 {
	return g.now().UnixMilli()
}

// between returns an int in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.rand.Intn(hi-lo+1)
}

func (g *Generator) pick(list []string) string {
	return list[g.rand.Intn(len(list))]
}

// Pick returns one element of list
func (g *Generator) Pick(list []string) string {
	return g.pick(list)
}

// RandomString - n characters from [A-Za-z0-9]
func (g *Generator) RandomString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphanumeric[g.rand.Intn(len(alphanumeric))])
	}
	return b.String()
}

// RandomEmail - test.<rand6>.<epochms>@<domain>
func (g *Generator) RandomEmail(domain string) string {
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return fmt.Sprintf("test.%s.%d@%s", g.RandomString(6), g.epochMillis(), domain)
}

// RandomPhoneNumber - NNN-NNN-NNNN
func (g *Generator) RandomPhoneNumber() string {
	return fmt.Sprintf("%d-%d-%d", g.between(100, 999), g.between(100, 999), g.between(1000, 9999))
}

func (g *Generator) RandomName() entities.PersonName {
	return entities.PersonName{
		FirstName: g.pick(firstNames),
		LastName:  g.pick(lastNames),
	}
}

func (g *Generator) RandomAddress() entities.PostalAddress {
	return entities.PostalAddress{
		Street:  g.pick(streets),
		City:    g.pick(cities),
		State:   g.pick(states),
		ZipCode: fmt.Sprint(g.between(10000, 99999)),
		Country: "United States",
	}
}

// RandomCreditCard - a well-known test card expiring 1 to 5 years from now
func (g *Generator) RandomCreditCard() entities.CreditCard {
	return entities.CreditCard{
		CardNumber:  g.pick(testCardNumbers),
		NameOnCard:  g.RandomName().Full(),
		ExpiryMonth: fmt.Sprintf("%02d", g.between(1, 12)),
		ExpiryYear:  fmt.Sprint(g.now().Year() + g.between(1, 5)),
		CVV:         fmt.Sprint(g.between(100, 999)),
	}
}

// suffix returns 8 lowercase hex characters from a v4 UUID
func (g *Generator) suffix() string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		// math/rand readers never fail
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

// CreateRandomUser - user_<8>, test_<epochms>@example.com, Pass_<8>
func (g *Generator) CreateRandomUser() entities.User {
	return entities.User{
		Username: "user_" + g.suffix(),
		Email:    fmt.Sprintf("test_%d@%s", g.epochMillis(), DefaultEmailDomain),
		Password: "Pass_" + g.suffix(),
	}
}

func (g *Generator) CreatePremiumUser() entities.User {
	u := g.CreateRandomUser()
	u.Subscription = "premium"
	u.PaymentVerified = true
	return u
}

// RegistrationIdentity - the name, email and password a scenario registers with
func (g *Generator) RegistrationIdentity(prefix string) entities.Credentials {
	ts := g.epochMillis()
	return entities.Credentials{
		Name:     fmt.Sprintf("%s User %d", prefix, ts),
		Email:    fmt.Sprintf("%suser%d@%s", strings.ToLower(prefix), ts, DefaultEmailDomain),
		Password: RegistrationPassword,
	}
}
