package response

import (
	"unicart/internal/domain/cart"
	"unicart/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

var moneyToCents = copier.TypeConverter{
	SrcType: cart.Money{},
	DstType: int64(0),
	Fn: func(src any) (any, error) {
		return src.(cart.Money).Cents(), nil
	},
}

var copyOpts = copier.Option{
	Converters: []copier.TypeConverter{moneyToCents},
}

type CartItemResponse struct {
	ID         string            `json:"id"`
	DomainType cart.DomainType   `json:"domainType"`
	Name       string            `json:"name"`
	UnitPrice  int64             `json:"unitPrice"`
	Quantity   int               `json:"quantity"`
	LineTotal  int64             `json:"lineTotal"`
	ImageRef   string            `json:"imageRef,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type DomainCartResponse struct {
	DomainType cart.DomainType    `json:"domainType"`
	Items      []CartItemResponse `json:"items"`
	ItemCount  int                `json:"itemCount"`
	LineCount  int                `json:"lineCount"`
	TotalPrice int64              `json:"totalPrice"`
}

type DomainSummaryResponse struct {
	DomainType cart.DomainType `json:"domainType"`
	ItemCount  int             `json:"itemCount"`
	LineCount  int             `json:"lineCount"`
	Subtotal   int64           `json:"subtotal"`
}

type CartSummaryResponse struct {
	Domains    []DomainSummaryResponse `json:"domains"`
	ItemCount  int                     `json:"itemCount"`
	GrandTotal int64                   `json:"grandTotal"`
}

type CartItemsResponse struct {
	Items []CartItemResponse `json:"items"`
}

func FromCartItem(it cart.Item) (CartItemResponse, error) {
	var res CartItemResponse
	if err := copier.CopyWithOption(&res, &it, copyOpts); err != nil {
		return CartItemResponse{}, err
	}
	res.LineTotal = it.LineTotal().Cents()
	return res, nil
}

func FromCartItems(items []cart.Item) ([]CartItemResponse, error) {
	res := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		r, err := FromCartItem(it)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func FromDomainCartView(v *queries.DomainCartView) (*DomainCartResponse, error) {
	items, err := FromCartItems(v.Items)
	if err != nil {
		return nil, err
	}
	return &DomainCartResponse{
		DomainType: v.DomainType,
		Items:      items,
		ItemCount:  v.ItemCount,
		LineCount:  v.LineCount,
		TotalPrice: v.TotalPrice.Cents(),
	}, nil
}

func FromCartSummary(s *queries.CartSummary) (*CartSummaryResponse, error) {
	res := &CartSummaryResponse{
		ItemCount:  s.ItemCount,
		GrandTotal: s.GrandTotal.Cents(),
	}
	if err := copier.CopyWithOption(&res.Domains, &s.Domains, copyOpts); err != nil {
		return nil, err
	}
	return res, nil
}
