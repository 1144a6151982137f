package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"symres/build"
	"symres/logging"
	"symres/mods"
	"symres/resolve"
	"symres/sem"
)

// execResolveCommand executes the `resolve` subcommand
func execResolveCommand(result *olive.ArgParseResult) bool {
	modulePath, _ := result.PrimaryArg()
	names := splitNames(result.Arguments["name"].(string))
	if len(names) == 0 {
		logging.PrintErrorMessage("CLI Usage Error", fmt.Errorf("no metadata names given"))
		return false
	}

	logging.DisplayHeader(modulePath)

	loader := build.NewLoader()
	if prelude, ok := result.Arguments["prelude"]; ok {
		loader.Prelude = prelude.(string)
	}

	comp, ok := loadCompilation(loader, modulePath)
	if !ok {
		return false
	}

	r := resolve.NewResolver(
		resolve.WithUniquenessProbe(loader.RootManifest().UniquenessProbe),
		resolve.WithReporter(noteReporter{}),
	)

	results, err := resolveAll(r, comp, names, result.HasFlag("attribute"))
	if err != nil {
		logging.PrintErrorMessage("Resolution Error", err)
		logging.DisplayFinished(false, logging.DisplayWarnings())
		return false
	}

	explain := result.HasFlag("explain")
	success := true
	for _, res := range results {
		if res.Symbol == nil {
			success = false
			logging.DisplayResult(res.Name, res.Outcome.String(), false)
		} else {
			logging.DisplayResult(res.Name, fmt.Sprintf("%s (%s, %s)", res.Symbol.MetadataName, res.Symbol.Module, res.Outcome), true)
		}

		if explain {
			logging.DisplayTable(candidateRows(res))
		}
	}

	logging.DisplayFinished(success, logging.DisplayWarnings())
	return success
}

// execVisibilityCommand executes the `visibility` subcommand
func execVisibilityCommand(result *olive.ArgParseResult) bool {
	modulePath, _ := result.PrimaryArg()
	name := strings.TrimSpace(result.Arguments["name"].(string))

	logging.DisplayHeader(modulePath)

	comp, ok := loadCompilation(build.NewLoader(), modulePath)
	if !ok {
		return false
	}

	sym := lookupSymbol(comp, name)
	if sym == nil {
		logging.PrintErrorMessage("Lookup Error", fmt.Errorf("no symbol named `%s` in `%s` or its references", name, comp.Local.Name))
		logging.DisplayFinished(false, logging.DisplayWarnings())
		return false
	}

	logging.DisplayResult(fmt.Sprintf("%s (%s)", name, sym.Module), sem.EvaluateVisibility(sym).String(), true)
	logging.DisplayTable(chainRows(sym))

	logging.DisplayFinished(true, logging.DisplayWarnings())
	return true
}

// loadCompilation loads the module at `modulePath` and reports any failure.
// Every problem found in a manifest is logged separately.
func loadCompilation(loader *build.Loader, modulePath string) (*mods.Compilation, bool) {
	comp, err := loader.Load(modulePath)
	if err != nil {
		logLoadError(err)
	}

	if !logging.ShouldProceed() {
		logging.DisplayFinished(false, logging.DisplayWarnings())
		return nil, false
	}

	return comp, true
}

// logLoadError logs a load error as one or more config errors
func logLoadError(err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, problem := range merr.Errors {
			logging.LogConfigError("Manifest", problem.Error())
		}

		return
	}

	logging.LogConfigError("Load", err.Error())
}

// -----------------------------------------------------------------------------

// splitNames splits a comma separated list of metadata names dropping any
// empty entries
func splitNames(arg string) []string {
	var names []string
	for _, name := range strings.Split(arg, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

// resolveAll resolves every name concurrently against the same compilation.
// The results are in the same order as the names.
func resolveAll(r *resolve.Resolver, comp *mods.Compilation, names []string, attribute bool) ([]*resolve.Resolution, error) {
	results := make([]*resolve.Resolution, len(names))

	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := mods.ValidateMetadataName(name); err != nil {
				return err
			}

			if attribute {
				results[i] = r.ExplainAttribute(comp, name)
			} else {
				results[i] = r.Explain(comp, name)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// lookupSymbol finds a symbol by its qualified name in the local module first
// and then in the referenced modules in search order
func lookupSymbol(comp *mods.Compilation, name string) *sem.Symbol {
	if sym := comp.Local.LookupSymbol(name); sym != nil {
		return sym
	}

	for _, mod := range comp.ReferencedModules() {
		if sym := mod.LookupSymbol(name); sym != nil {
			return sym
		}
	}

	return nil
}

// candidateRows builds the explanation table for a resolution
func candidateRows(res *resolve.Resolution) [][]string {
	rows := [][]string{{"Module", "Type", "Visibility", "Accepted", "Reason"}}
	for _, cand := range res.Candidates {
		rows = append(rows, []string{
			cand.Module.Name,
			cand.Symbol.MetadataName,
			cand.Visibility.String(),
			fmt.Sprint(cand.Accepted),
			cand.Reason,
		})
	}

	return rows
}

// chainRows builds the table of the accessibility chain of a symbol
func chainRows(sym *sem.Symbol) [][]string {
	rows := [][]string{{"Symbol", "Kind", "Accessibility"}}
	for _, link := range sym.Chain() {
		rows = append(rows, []string{link.Name, link.Kind.String(), link.Accessibility.String()})
	}

	return rows
}
