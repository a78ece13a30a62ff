package logging

// Field names shared by every log call site so entries stay greppable.
const (
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldExtractor  = "extractor"
	FieldPage       = "page"
	FieldLine       = "line"
	FieldState      = "state"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldCurrency   = "currency"
	FieldLanguage   = "language"
	FieldError      = "error"
)
