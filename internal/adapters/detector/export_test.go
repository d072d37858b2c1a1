package detector

var FormatFor = formatFor
