package tagquery

// Structural error messages, stable for direct display in the UI.
const (
	MsgUnmatchedOpenParen  = "Unmatched opening parenthesis"
	MsgUnmatchedCloseParen = "Unmatched closing parenthesis"
	MsgConsecutiveOps      = "Cannot have consecutive operators"
	MsgLeadingOp           = "Query cannot start with AND or OR"
	MsgTrailingOp          = "Query cannot end with AND or OR"
	MsgDanglingNot         = "NOT operator must be followed by a tag"
)

// ValidationResult reports structural checks on a token stream. It is pure
// data; malformed user input never raises an error.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateQuery tokenizes and validates a raw query string.
func ValidateQuery(query string) ValidationResult {
	return Validate(Tokenize(query))
}

// Validate performs structural checks on a token stream before parsing.
// A NOT at the start of the query is allowed (prefix negation); NOT must
// always be followed by a tag, so negating a parenthesized group is
// rejected here rather than silently mis-parsed.
func Validate(tokens []Token) ValidationResult {
	var errs []string
	depth := 0

	for i, tok := range tokens {
		switch tok.Kind {
		case TokLParen:
			depth++
		case TokRParen:
			depth--
			if depth < 0 {
				errs = append(errs, MsgUnmatchedCloseParen)
				depth = 0
			}
		case TokAnd, TokOr:
			if i == 0 {
				errs = append(errs, MsgLeadingOp)
			} else if k := tokens[i-1].Kind; k == TokAnd || k == TokOr {
				errs = append(errs, MsgConsecutiveOps)
			}
			if i == len(tokens)-1 {
				errs = append(errs, MsgTrailingOp)
			}
		case TokNot:
			if i == len(tokens)-1 || tokens[i+1].Kind != TokTag {
				errs = append(errs, MsgDanglingNot)
			}
		}
	}

	if depth > 0 {
		errs = append(errs, MsgUnmatchedOpenParen)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
