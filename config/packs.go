package config

// CoinPack is a purchasable bundle. Prices are USD cents; Stripe is charged
// the exact amount, so keep these aligned with the store listings.
type CoinPack struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Coins     int64  `json:"coins"`
	AmountUSD int64  `json:"amountUsd"`
}

var CoinPacks = []CoinPack{
	{ID: "pack_starter", Name: "Starter Pouch", Coins: 500, AmountUSD: 199},
	{ID: "pack_adventurer", Name: "Adventurer Chest", Coins: 1500, AmountUSD: 499},
	{ID: "pack_hero", Name: "Hero Vault", Coins: 4000, AmountUSD: 999},
}

func FindCoinPack(id string) (CoinPack, bool) {
	for _, p := range CoinPacks {
		if p.ID == id {
			return p, true
		}
	}
	return CoinPack{}, false
}
