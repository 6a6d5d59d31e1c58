// Package recipe reads TOML build recipes and the maskcompo.toml defaults
// file.
//
// A recipe lists component builds to run in one go. Each [[build]] entry
// names a registered component, optional parameters and an output base
// name; parameters omitted from an entry fall back to browser defaults.
//
//	r, err := recipe.Load("masks.toml")
//	if err != nil {
//	    return err
//	}
//	for _, job := range r.Jobs(cfg.Options()) {
//	    result, err := runner.Execute(ctx, job.Options)
//	    ...
//	}
//
// Parameter values may be numbers or strings with a "deg" suffix, which
// are converted to radians. Unknown keys are rejected in both files.
package recipe
