package transaction

import (
	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// Validator checks a request's structure, account formats and per
// transaction limits. A nil return means the request is acceptable.
type Validator interface {
	Validate(req models.TransactionRequest) *models.ValidationError
}
