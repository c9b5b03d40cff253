// Package validator compiles schema trees into reusable validators and runs
// them against decoded JSON values.
//
// A Compiler turns a *schema.Node into a *Validator once and caches the
// result by node identity, so compiling the same node again, or from
// several goroutines at once, yields the same *Validator. Recursive schemas
// compile to a finite graph: a reference back to a schema that is still
// being compiled becomes a deferred reference resolved on first use.
//
// Validation is fail-fast across the checks of a single schema and
// exhaustive across the properties of an object and the items of an array,
// so one call reports every invalid property:
//
//	c, err := validator.NewCompiler()
//	if err != nil {
//	    return err
//	}
//	v, err := c.Compile(map[string]any{
//	    "type":       "object",
//	    "properties": map[string]any{"age": map[string]any{"type": "integer"}},
//	})
//	if err != nil {
//	    return err
//	}
//	if _, err := v.Validate(doc); err != nil {
//	    if e := schemaerr.Find(err, schemaerr.KindType); e != nil {
//	        fmt.Println(e.Path)
//	    }
//	}
//
// Validators are immutable and safe for concurrent use.
package validator
