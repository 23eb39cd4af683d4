package distributor

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		amount                        int64
		burn, jackpot, dev, remainder int64
	}{
		{0, 0, 0, 0, 0},
		{1, 0, 0, 0, 1},
		{19, 16, 1, 0, 2},
		{20, 17, 2, 1, 0},
		{100, 85, 10, 5, 0},
		{1000, 850, 100, 50, 0},
		{12345, 10493, 1234, 617, 1},
	} {
		s := Split(big.NewInt(tc.amount))
		require.Equal(t, tc.burn, s.Burn.Int64(), tc.amount)
		require.Equal(t, tc.jackpot, s.Jackpot.Int64(), tc.amount)
		require.Equal(t, tc.dev, s.Development.Int64(), tc.amount)
		require.Equal(t, tc.remainder, s.Remainder.Int64(), tc.amount)
	}
}

func TestSplit_Conservation(t *testing.T) {
	for i := 0; i < 1000; i++ {
		amount := big.NewInt(rand.Int63n(1 << 40))
		s := Split(amount)

		require.True(t, s.Distributed().Cmp(amount) <= 0)
		require.Zero(t, amount.Cmp(new(big.Int).Add(s.Distributed(), s.Remainder)))

		divisible := new(big.Int).Mod(amount, big.NewInt(20)).Sign() == 0
		require.Equal(t, divisible, s.Remainder.Sign() == 0, amount.String())
	}
}
