package port

import "github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"

// TokenManager signs and verifies the bearer credential carrying an
// account id and role. Verification trusts the claims verbatim; there is
// no store lookup.
type TokenManager interface {
	Issue(account domain.Account) (string, error)
	Verify(token string) (domain.Account, error)
}
