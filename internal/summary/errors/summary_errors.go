package summaryerrors

import (
	"net/http"

	"github.com/shkhalid/maxerp/internal/shared/apperror"
)

var ErrInvalidMonth = apperror.New(
	apperror.CodeInvalidInput,
	"invalid month format, expected YYYY-MM",
	http.StatusUnprocessableEntity,
)
