// Package mapper implements the row-wise transforms consumed by the
// graph's Map operator: the Mapper interface itself, plus a library of
// stateless, construct-time configured mappers (FilterPunctuation,
// LowerCase, Split, Project, Filter, RenameColumn, Product,
// ArithmeticProcedureForMultipleColumns, MakeDatetime, ProcessDuration,
// MakeWeekdayHour, and the identity mapper Dummy) ported from the Python
// reference this engine was distilled from.
package mapper
