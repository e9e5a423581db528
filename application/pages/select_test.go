package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"pom_automation/application/pages/pagetest"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sortSelect entities.Selector = `[data-test="product-sort-container"]`

func fastSettle(b *Base) {
	b.timeouts.SelectSettle = time.Millisecond
}

func TestSelectOptionResilientPrimaryPath(t *testing.T) {
	b, d, _ := newTestBase(t)
	d.Set(sortSelect, &pagetest.Element{Options: []string{"az", "za", "lohi", "hilo"}})

	require.NoError(t, b.SelectOptionResilient(context.Background(), sortSelect, "lohi"))
	assert.Equal(t, "lohi", d.Element(sortSelect).Value)
	assert.Zero(t, d.Called("evaluate", ""))
}

func TestSelectOptionResilientFallback(t *testing.T) {
	b, d, buf := newTestBase(t)
	fastSettle(b)
	d.Set(sortSelect, &pagetest.Element{Hidden: true})

	var scripts []string
	d.OnEvaluate(func(script string, arg any) (any, error) {
		scripts = append(scripts, script)
		if script == forceSetValueScript {
			q := arg.(map[string]string)
			d.Element(entities.Selector(q["selector"])).Value = q["value"]
		}
		return nil, nil
	})

	require.NoError(t, b.SelectOptionResilient(context.Background(), sortSelect, "za"))
	assert.Equal(t, []string{forceClickScript, forceSetValueScript}, scripts)
	assert.Equal(t, "za", d.Element(sortSelect).Value)
	assert.Contains(t, buf.String(), "Alternative select approach succeeded")

	// only the fallback reached the load wait
	assert.Equal(t, 1, d.Called("idle", ""))
}

func TestSelectOptionResilientFallsBackWhenLoadWaitFails(t *testing.T) {
	b, d, _ := newTestBase(t)
	fastSettle(b)
	d.Set(sortSelect, &pagetest.Element{})

	evalCalls := 0
	d.Fail("idle", "", entities.ErrTimeout)
	d.OnEvaluate(func(script string, arg any) (any, error) {
		evalCalls++
		return nil, nil
	})

	err := b.SelectOptionResilient(context.Background(), sortSelect, "az")
	assert.ErrorIs(t, err, entities.ErrTimeout, "fallback also ends in the failing wait")
	assert.Equal(t, 2, evalCalls, "both scripts ran")
}

func TestSelectOptionResilientReturnsPrimaryError(t *testing.T) {
	b, d, buf := newTestBase(t)
	fastSettle(b)

	d.OnEvaluate(func(script string, arg any) (any, error) {
		return nil, errors.New("no element matches")
	})

	err := b.SelectOptionResilient(context.Background(), sortSelect, "hilo")
	assert.ErrorIs(t, err, entities.ErrElementNotFound)
	assert.NotContains(t, err.Error(), "no element matches")
	assert.Contains(t, buf.String(), "All select approaches failed")
}
