package distributor

import (
	"math/big"

	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
)

// Shares is a deposit split into buckets.
type Shares struct {
	Burn        *big.Int
	Jackpot     *big.Int
	Development *big.Int
	// Remainder is left on the contract account and is not attributed to any
	// bucket.
	Remainder *big.Int
}

// Split calculates the shares the contract assigns to a deposit of the given
// amount. Every share is rounded down.
func Split(amount *big.Int) Shares {
	s := Shares{
		Burn:        share(amount, distributorconst.BurnPercent),
		Jackpot:     share(amount, distributorconst.JackpotPercent),
		Development: share(amount, distributorconst.DevelopmentPercent),
	}

	s.Remainder = new(big.Int).Set(amount)
	s.Remainder.Sub(s.Remainder, s.Burn)
	s.Remainder.Sub(s.Remainder, s.Jackpot)
	s.Remainder.Sub(s.Remainder, s.Development)

	return s
}

// Distributed returns the sum of all bucket shares.
func (s Shares) Distributed() *big.Int {
	res := new(big.Int).Add(s.Burn, s.Jackpot)
	return res.Add(res, s.Development)
}

// share matches NeoVM DIV which truncates toward zero.
func share(amount *big.Int, percent int64) *big.Int {
	res := new(big.Int).Mul(amount, big.NewInt(percent))
	return res.Quo(res, big.NewInt(distributorconst.PercentBase))
}
