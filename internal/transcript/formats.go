package transcript

// DateOnly renders Record.DateOnly, e.g. 2023-01-02.
const DateOnly = "2006-01-02"

// DefaultYearPivot splits two-digit years: values below it map to 20xx,
// the rest to 19xx. 69 is the POSIX strptime %y convention, which is also
// what Go's "06" layout element uses.
const DefaultYearPivot = 69
