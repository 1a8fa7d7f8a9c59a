package lmq_test

import (
	"testing"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	assert "github.com/stretchr/testify/assert"
)

func Test_Rotation_001(t *testing.T) {
	assert := assert.New(t)

	t.Run("BeforeFirst", func(t *testing.T) {
		assert.Equal([]int{0, 1, 2}, lmq.Rotation(-1, 3))
	})

	t.Run("AfterFirst", func(t *testing.T) {
		assert.Equal([]int{1, 2, 0}, lmq.Rotation(0, 3))
	})

	t.Run("AfterLast", func(t *testing.T) {
		assert.Equal([]int{0, 1, 2}, lmq.Rotation(2, 3))
	})

	t.Run("SingleHost", func(t *testing.T) {
		assert.Equal([]int{0}, lmq.Rotation(-1, 1))
		assert.Equal([]int{0}, lmq.Rotation(0, 1))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(lmq.Rotation(-1, 0))
	})

	t.Run("OutOfRangeCursor", func(t *testing.T) {
		assert.Equal([]int{0, 1, 2}, lmq.Rotation(-7, 3))
		assert.Equal([]int{2, 0, 1}, lmq.Rotation(4, 3))
	})
}

func Test_Rotation_002(t *testing.T) {
	assert := assert.New(t)

	t.Run("EveryIndexOnce", func(t *testing.T) {
		for n := 1; n < 8; n++ {
			for cursor := -1; cursor < n; cursor++ {
				order := lmq.Rotation(cursor, n)
				assert.Len(order, n)
				seen := make(map[int]bool, n)
				for _, index := range order {
					assert.False(seen[index])
					seen[index] = true
				}
			}
		}
	})
}

func Test_RotationFunc_001(t *testing.T) {
	assert := assert.New(t)
	active := []bool{true, false, true}
	accept := func(i int) bool { return active[i] }

	t.Run("SkipInactive", func(t *testing.T) {
		order := lmq.RotationFunc(0, len(active), accept)
		assert.Equal([]int{2, 0}, order)
	})

	t.Run("StartBeforeFirst", func(t *testing.T) {
		order := lmq.RotationFunc(-1, len(active), accept)
		assert.Equal([]int{0, 2}, order)
	})

	t.Run("NoneActive", func(t *testing.T) {
		order := lmq.RotationFunc(-1, 3, func(int) bool { return false })
		assert.Empty(order)
	})

	t.Run("NilAccept", func(t *testing.T) {
		assert.Equal(lmq.Rotation(1, 4), lmq.RotationFunc(1, 4, nil))
	})
}
