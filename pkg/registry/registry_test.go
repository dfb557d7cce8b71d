package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotly/quotly/pkg/domain"
)

func TestClassify(t *testing.T) {
	reg := New()

	tests := []struct {
		name    string
		code    string
		want    domain.Kind
		wantErr bool
	}{
		{name: "fiat USD", code: "USD", want: domain.KindFiat},
		{name: "fiat lowercase", code: "eur", want: domain.KindFiat},
		{name: "fiat with whitespace", code: " gbp ", want: domain.KindFiat},
		{name: "crypto BTC", code: "BTC", want: domain.KindCrypto},
		{name: "crypto lowercase", code: "eth", want: domain.KindCrypto},
		{name: "USDT is crypto first", code: "USDT", want: domain.KindCrypto},
		{name: "USDC is crypto first", code: "usdc", want: domain.KindCrypto},
		{name: "DAI is stablecoin only", code: "DAI", want: domain.KindStablecoin},
		{name: "BUSD is stablecoin only", code: "BUSD", want: domain.KindStablecoin},
		{name: "unknown code", code: "XYZ", wantErr: true},
		{name: "empty code", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := reg.Classify(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "BTC", Normalize("btc"))
	assert.Equal(t, "USD", Normalize("  usd "))
	assert.Equal(t, "", Normalize(""))
}

func TestIsStablecoin(t *testing.T) {
	reg := New()

	assert.True(t, reg.IsStablecoin("USDT"))
	assert.True(t, reg.IsStablecoin("dai"))
	assert.False(t, reg.IsStablecoin("BTC"))
	assert.False(t, reg.IsStablecoin("USD"))
}

func TestCryptoAsset(t *testing.T) {
	reg := New()

	asset, ok := reg.CryptoAsset("btc")
	require.True(t, ok)
	assert.Equal(t, "bitcoin", asset.CoinGeckoID)
	assert.Equal(t, "bitcoin", asset.CoinCapID)

	asset, ok = reg.CryptoAsset("BNB")
	require.True(t, ok)
	assert.Equal(t, "binancecoin", asset.CoinGeckoID)
	assert.Equal(t, "binance-coin", asset.CoinCapID)

	_, ok = reg.CryptoAsset("DAI")
	assert.False(t, ok)
}

func TestStablecoinID(t *testing.T) {
	reg := New()

	id, ok := reg.StablecoinID("busd")
	require.True(t, ok)
	assert.Equal(t, "binance-usd", id)

	_, ok = reg.StablecoinID("BTC")
	assert.False(t, ok)
}

func TestCodeListsSorted(t *testing.T) {
	reg := New()

	fiat := reg.FiatCodes()
	assert.Len(t, fiat, 34)
	assert.IsIncreasing(t, fiat)
	assert.Contains(t, fiat, "USD")
	assert.Contains(t, fiat, "PKR")

	crypto := reg.CryptoCodes()
	assert.Len(t, crypto, 10)
	assert.IsIncreasing(t, crypto)
	assert.Contains(t, crypto, "BTC")

	stable := reg.StablecoinCodes()
	assert.Equal(t, []string{"BUSD", "DAI", "USDC", "USDT"}, stable)
}
