// Package validator collects findings about vibecheck's own configuration
// and renders them for the terminal or as JSON.
//
// A [Result] holds [Issue] values of three severities. Only errors make a
// result fail; warnings and notes are printed but do not change the exit
// status of `vibecheck config validate`.
//
//	res := &validator.Result{}
//	res.AddError("http_port", "must be between 1 and 65535", 0)
//	res.AddWarning("backup_retention", "old backups are never pruned", 0)
//
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(res)
package validator
