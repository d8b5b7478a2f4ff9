package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/shitsu/pkg/config"
	"github.com/sukalov/shitsu/pkg/enums"
)

func newTestComposer() *Composer {
	return NewComposer(config.TelegramConfig{Host: "t.me", Handle: "shitsu_zakaz"})
}

func TestComposeOrderFullMessage(t *testing.T) {
	composer := newTestComposer()

	result := composer.ComposeOrder(OrderInput{
		Lines: []LineInput{
			{Name: "Картина «Утро»", Price: 2500, Quantity: 2},
			{Name: "Открытка", Price: 800, Quantity: 1},
		},
		DeliveryMethod: enums.DeliveryMethodCDEK,
		Address:        "Moscow, st. 1",
	})

	require.True(t, result.Valid)
	assert.Equal(t, 5800, result.Total)

	assert.True(t, strings.HasPrefix(result.Message, "ЗАКАЗ\n\n"))
	assert.Contains(t, result.Message, "Картина «Утро» (2 шт.) - 5\u00a0000 ₽")
	assert.Contains(t, result.Message, "Открытка (1 шт.) - 800 ₽")
	assert.Contains(t, result.Message, "Доставка: СДЭК")
	assert.Contains(t, result.Message, "Адрес: Moscow, st. 1")
	assert.True(t, strings.HasSuffix(result.Message, "Итого: 5\u00a0800 ₽"))
}

func TestComposeOrderDeliveryLabels(t *testing.T) {
	composer := newTestComposer()

	cases := map[enums.DeliveryMethod]string{
		enums.DeliveryMethodPost: "Доставка: Почта России",
		enums.DeliveryMethodCDEK: "Доставка: СДЭК",
		enums.DeliveryMethodOzon: "Доставка: OZON",
	}
	for method, want := range cases {
		result := composer.ComposeOrder(OrderInput{
			Lines:          []LineInput{{Name: "Открытка", Price: 800, Quantity: 1}},
			DeliveryMethod: method,
			Address:        "Moscow",
		})
		require.True(t, result.Valid)
		assert.Contains(t, result.Message, want)
	}
}

func TestComposeOrderBlankAddressInvalid(t *testing.T) {
	composer := newTestComposer()

	result := composer.ComposeOrder(OrderInput{
		Lines:          []LineInput{{Name: "Открытка", Price: 800, Quantity: 1}},
		DeliveryMethod: enums.DeliveryMethodPost,
		Address:        "   ",
	})

	assert.False(t, result.Valid)
	assert.Empty(t, result.Link)
	assert.Empty(t, result.Message)
}

func TestComposeOrderEmptyCartInvalid(t *testing.T) {
	composer := newTestComposer()

	result := composer.ComposeOrder(OrderInput{
		DeliveryMethod: enums.DeliveryMethodPost,
		Address:        "Moscow",
	})

	assert.False(t, result.Valid)
	assert.Empty(t, result.Link)
}

func TestComposeOrderStripsAngleBrackets(t *testing.T) {
	composer := newTestComposer()

	result := composer.ComposeOrder(OrderInput{
		Lines:          []LineInput{{Name: "<b>Открытка</b>", Price: 800, Quantity: 1}},
		DeliveryMethod: enums.DeliveryMethodPost,
		Address:        "<script>Moscow</script>",
	})

	require.True(t, result.Valid)
	assert.NotContains(t, result.Message, "<")
	assert.NotContains(t, result.Message, ">")
	assert.Contains(t, result.Message, "bОткрытка/b")
}

func TestComposeOrderLinkEncodingRoundTrips(t *testing.T) {
	composer := newTestComposer()

	result := composer.ComposeOrder(OrderInput{
		Lines:          []LineInput{{Name: "Картина «Утро»", Price: 2500, Quantity: 2}},
		DeliveryMethod: enums.DeliveryMethodCDEK,
		Address:        "Moscow, st. 1",
	})
	require.True(t, result.Valid)

	prefix := "https://t.me/shitsu_zakaz?text="
	require.True(t, strings.HasPrefix(result.Link, prefix))

	encoded := strings.TrimPrefix(result.Link, prefix)
	assert.NotContains(t, encoded, "+")

	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, result.Message, decoded)
}

func TestComposeCustom(t *testing.T) {
	composer := newTestComposer()

	result := composer.ComposeCustom("Портрет кота, формат А4")
	require.True(t, result.Valid)
	assert.Equal(t, "ИНДИВИДУАЛЬНЫЙ ЗАКАЗ\n\nПортрет кота, формат А4", result.Message)
	assert.True(t, strings.HasPrefix(result.Link, "https://t.me/shitsu_zakaz?text="))

	empty := composer.ComposeCustom("  ")
	assert.False(t, empty.Valid)
}
