package flow

import (
	"github.com/kharidoapp/checkout-engine/internal/models"
)

// Reason names where a blocked flow should send the user.
type Reason string

const (
	ReasonSignIn    Reason = "sign_in_required"
	ReasonEmptyCart Reason = "cart_empty"
)

// Outcome is the result of a flow guard. The zero value means proceed;
// otherwise Redirect carries the reason. Guards are evaluated at the start
// of each flow instead of burying navigation in rendering code.
type Outcome struct {
	Redirect Reason
}

func (o Outcome) Proceed() bool {
	return o.Redirect == ""
}

func Proceed() Outcome {
	return Outcome{}
}

func RedirectTo(reason Reason) Outcome {
	return Outcome{Redirect: reason}
}

// RequireAuth gates every cart, checkout and orders entry point.
func RequireAuth(p *models.Principal) Outcome {
	if p == nil {
		return RedirectTo(ReasonSignIn)
	}

	return Proceed()
}

// RequireNonEmptyCart gates checkout entry.
func RequireNonEmptyCart(items []models.CartItem) Outcome {
	if len(items) == 0 {
		return RedirectTo(ReasonEmptyCart)
	}

	return Proceed()
}
