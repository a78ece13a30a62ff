package pdfparser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fjacquet/kaspi-csv/internal/currencyutils"
	"fjacquet/kaspi-csv/internal/dateutils"
	"fjacquet/kaspi-csv/internal/layout"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"
	"fjacquet/kaspi-csv/internal/parsererror"
)

// lineState is the position of the scanner within the statement.
type lineState int

const (
	// stateAwaitingHeader skips the account summary until the table header.
	stateAwaitingHeader lineState = iota
	// stateAwaitingDate is inside the table between transactions.
	stateAwaitingDate
	// stateAccumulatingDescription has an open transaction collecting
	// continuation lines of its details column.
	stateAccumulatingDescription
	// stateComplete is reached once all lines are consumed.
	stateComplete
)

func (s lineState) String() string {
	switch s {
	case stateAwaitingHeader:
		return "AwaitingHeader"
	case stateAwaitingDate:
		return "AwaitingDate"
	case stateAccumulatingDescription:
		return "AccumulatingDescription"
	case stateComplete:
		return "Complete"
	default:
		return fmt.Sprintf("lineState(%d)", int(s))
	}
}

var errRowShape = errors.New("expected <date> <sign> <amount> <currency> <operation> <details>")

// detailsSlack tolerates continuation lines that the extractor shifted a
// little to the left of the details column.
const detailsSlack = 2

// statementScanner classifies the lines of an extracted statement and
// assembles transactions in statement order.
type statementScanner struct {
	profile *layout.Profile
	logger  logging.Logger

	state        lineState
	language     string
	builder      *models.TransactionBuilder
	openLine     int
	openSnippet  string
	detailsCol   int
	transactions []models.Transaction
}

func newStatementScanner(profile *layout.Profile, logger logging.Logger) *statementScanner {
	return &statementScanner{
		profile:      profile,
		logger:       logger,
		state:        stateAwaitingHeader,
		builder:      models.NewTransactionBuilder(),
		transactions: []models.Transaction{},
	}
}

// scan consumes the whole text. Line numbers in errors are 1-based.
func (s *statementScanner) scan(text string) ([]models.Transaction, error) {
	page := 1
	for i, raw := range strings.Split(text, "\n") {
		for k, segment := range strings.Split(raw, PageBreak) {
			if k > 0 {
				page++
				s.logger.Debug("Parsing page", logging.Field{Key: logging.FieldPage, Value: page})
			}
			if err := s.feed(i+1, segment); err != nil {
				return nil, err
			}
		}
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return s.transactions, nil
}

func (s *statementScanner) feed(lineNo int, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if s.state == stateAwaitingHeader {
		if h, ok := s.profile.MatchHeader(trimmed); ok {
			s.language = h.Language
			s.state = stateAwaitingDate
			s.logger.Debug("Found transaction table header",
				logging.Field{Key: logging.FieldLine, Value: lineNo},
				logging.Field{Key: logging.FieldLanguage, Value: h.Language})
		}
		return nil
	}

	if s.profile.HasDatePrefix(trimmed) {
		if err := s.complete(); err != nil {
			return err
		}
		return s.begin(lineNo, line)
	}

	// Repeated headers and page furniture leave the open record open, so
	// details wrapped onto the next page still reach it.
	if _, ok := s.profile.MatchHeader(trimmed); ok {
		return nil
	}
	if s.profile.IsArtifact(trimmed) {
		return nil
	}

	if s.state == stateAccumulatingDescription && indentation(line) >= s.detailsCol-detailsSlack {
		s.builder.AppendDetails(trimmed)
		return nil
	}

	// Anything left of the details column, such as a footnote, ends the record.
	if err := s.complete(); err != nil {
		return err
	}
	s.logger.Debug("Skipping text between transactions",
		logging.Field{Key: logging.FieldLine, Value: lineNo},
		logging.Field{Key: logging.FieldState, Value: s.state.String()})
	return nil
}

// begin opens a transaction from a date-prefixed row.
func (s *statementScanner) begin(lineNo int, raw string) error {
	line := strings.TrimSpace(raw)
	layoutErr := func(field string, err error) error {
		return &parsererror.LayoutError{Line: lineNo, Field: field, Snippet: line, Err: err}
	}

	row, ok := s.profile.MatchRow(line)
	if !ok {
		return layoutErr("transaction row", errRowShape)
	}

	date, err := dateutils.ParseInLayout(row.Date, s.profile.DateLayout)
	if err != nil {
		return layoutErr("date", err)
	}

	if row.Currency != s.profile.Currency {
		return layoutErr("currency", fmt.Errorf("unexpected currency %q, expected %q", row.Currency, s.profile.Currency))
	}

	amount, err := currencyutils.ParseSignedAmount(row.Sign, row.Amount)
	if err != nil {
		return layoutErr("amount", err)
	}

	var operation, details string
	if row.Rest != "" {
		operation, details, ok = s.profile.SplitOperation(row.Rest)
		if !ok {
			return layoutErr("operation", fmt.Errorf("cannot separate operation from details in %q", row.Rest))
		}
	}

	s.builder.Reset().
		WithDate(date).
		WithAmount(amount, row.Currency).
		WithOperation(operation).
		AppendDetails(details)
	s.openLine = lineNo
	s.openSnippet = line
	s.detailsCol = detailsColumn(raw, details)
	s.state = stateAccumulatingDescription
	return nil
}

// complete closes the open transaction, if any.
func (s *statementScanner) complete() error {
	if s.state != stateAccumulatingDescription {
		return nil
	}
	if !s.builder.HasDetails() {
		s.logger.Debug("Transaction has no details, using the operation as payee",
			logging.Field{Key: logging.FieldLine, Value: s.openLine})
	}
	tx, err := s.builder.Build()
	if err != nil {
		return &parsererror.LayoutError{Line: s.openLine, Field: "transaction", Snippet: s.openSnippet, Err: err}
	}
	s.transactions = append(s.transactions, tx)
	s.logger.Debug(tx.String(), logging.Field{Key: logging.FieldLine, Value: s.openLine})
	s.state = stateAwaitingDate
	return nil
}

// detailsColumn is the rune offset at which details start in a row.
// Rows without details yield the offset just past their last column.
func detailsColumn(row, details string) int {
	row = strings.TrimRightFunc(row, unicode.IsSpace)
	if details == "" || !strings.HasSuffix(row, details) {
		return utf8.RuneCountInString(row) + 1
	}
	return utf8.RuneCountInString(row[:len(row)-len(details)])
}

// indentation counts the leading blanks of a line in runes.
func indentation(line string) int {
	return utf8.RuneCountInString(line) - utf8.RuneCountInString(strings.TrimLeftFunc(line, unicode.IsSpace))
}

func (s *statementScanner) finish() error {
	if err := s.complete(); err != nil {
		return err
	}
	if s.state == stateAwaitingHeader {
		s.logger.Warn("No transaction table header found; the statement yields no transactions")
	}
	s.state = stateComplete
	return nil
}
