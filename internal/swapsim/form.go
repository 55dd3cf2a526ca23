package swapsim

// Form holds the two sides of the swap input as the user sees them.
type Form struct {
	FromToken  string `json:"fromToken"`
	FromAmount string `json:"fromAmount"`
	ToToken    string `json:"toToken"`
	ToAmount   string `json:"toAmount"`
}

// Switch swaps the two sides verbatim. No recompute: amounts travel with
// their tokens.
func (f Form) Switch() Form {
	return Form{
		FromToken:  f.ToToken,
		FromAmount: f.ToAmount,
		ToToken:    f.FromToken,
		ToAmount:   f.FromAmount,
	}
}
