package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rizalarf/matchday/internal/roster/model"
)

func TestEffective(t *testing.T) {
	t.Run("proof forces transfer and locks", func(t *testing.T) {
		for _, stored := range []model.Status{model.StatusUnpaid, model.StatusCash, model.StatusTransfer} {
			r := Effective(stored, true)
			assert.Equal(t, model.StatusTransfer, r.Status, string(stored))
			assert.False(t, r.Editable, string(stored))
			assert.True(t, r.Locked())
			assert.True(t, r.Paid())
		}
	})

	t.Run("cash without proof stays editable", func(t *testing.T) {
		r := Effective(model.StatusCash, false)
		assert.Equal(t, model.StatusCash, r.Status)
		assert.True(t, r.Editable)
		assert.True(t, r.Paid())
	})

	t.Run("unpaid without proof", func(t *testing.T) {
		r := Effective(model.StatusUnpaid, false)
		assert.Equal(t, model.StatusUnpaid, r.Status)
		assert.True(t, r.Editable)
		assert.False(t, r.Paid())
	})

	t.Run("transfer without proof remains editable", func(t *testing.T) {
		r := Effective(model.StatusTransfer, false)
		assert.Equal(t, model.StatusTransfer, r.Status)
		assert.True(t, r.Editable)
		assert.True(t, r.Paid())
	})

	t.Run("idempotent", func(t *testing.T) {
		first := Effective(model.StatusUnpaid, true)
		second := Effective(first.Status, true)
		assert.Equal(t, first, second)
	})

	t.Run("no stored edit sequence unlocks a proofed record", func(t *testing.T) {
		for _, stored := range []model.Status{model.StatusUnpaid, model.StatusCash, model.StatusTransfer} {
			r := Effective(stored, true)
			assert.True(t, r.Locked())
		}
	})
}
