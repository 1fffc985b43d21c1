// Package prettyprinter serializes a *model.Model back into Wandle DSL
// source, for diagnostics and round-trip testing. Grounded on
// wandle_model.py's as_code family of methods (WandleModel.as_code,
// WandleClass.as_code, WandleGeneric.as_code, WandleObject.as_code,
// WandleFunction.as_code, WandleSingle.as_code): same declaration order
// (objects, generics, aliases, singles, classes, flows) and the same
// choice between a bare `.`-terminated stub and a `{ … }` block. A
// Single is always printed as a `{ … }` block, even with no members.
//
// Two deliberate departures from the original, both needed for
// round-tripping to actually work instead of merely approximating it:
//
//  1. The original prints every class/generic/single method with no
//     sync/async keyword at all (WandleFunction.as_code ignores
//     b_is_async outside the flow case), so re-parsing the printed output
//     can't recover which map a member belonged to. This printer emits
//     the member's real "sync"/"async" keyword.
//  2. The original's alias line swaps the two names
//     ('alias %s to %s.'%(dst, name) against a (name, dst) pair — i.e.
//     it prints the target before the alias name instead of after).
//     This printer prints `alias <name> to <target>.`, matching the
//     grammar the parser actually accepts.
package prettyprinter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wandlelang/wandle/internal/model"
)

// Print renders m as Wandle DSL source text.
func Print(m *model.Model) string {
	var sb strings.Builder

	printRootObjects(&sb, m)
	printGenerics(&sb, m)
	printAliases(&sb, m)
	printSingles(&sb, m)
	printClasses(&sb, m)
	printFlows(&sb, m)

	return strings.TrimRight(sb.String(), "\n")
}

func sortedKeys[V any](d map[string]V) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printRootObjects reproduces WandleModel.as_code's first loop, over
// self.d_object — which in this model holds the seeded void plus each
// Single's prebuilt instance. Singles are skipped here (printSingles
// covers them), so only void is printed, since Wandle has no other
// root-level object declaration form.
func printRootObjects(sb *strings.Builder, m *model.Model) {
	for _, name := range sortedKeys(m.RootObjects) {
		if _, isSingle := m.Singles[name]; isSingle {
			continue
		}
		oh := m.RootObjects[name]
		if oh == m.VoidObject {
			sb.WriteString("# Void is built-in.\n\n")
			continue
		}
		obj := m.Object(oh)
		sb.WriteString(fmt.Sprintf("%s %s.\n\n", m.Class(obj.ClassH).Name, name))
	}
}

func printGenerics(sb *strings.Builder, m *model.Model) {
	for _, name := range sortedKeys(m.GenericByName) {
		g := m.Generic(m.GenericByName[name])
		sb.WriteString(genericAsCode(m, g, name))
		sb.WriteString("\n\n")
	}
}

func genericAsCode(m *model.Model, g *model.Generic, name string) string {
	csep := strings.Join(g.Params, ",")
	if len(g.Members) == 0 {
		return fmt.Sprintf("generic %s %s.", name, csep)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("generic %s %s {\n", name, csep))
	for _, mt := range sortedMembers(g.Members) {
		sb.WriteString(memberTemplateAsCode(mt))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// sortedMembers orders a Generic's MemberTemplate list by name for
// deterministic output (Go map iteration in the rest of this package is
// already sorted; Generic.Members is a slice built in declaration order,
// so it gets an explicit sort here to match).
func sortedMembers(members []model.MemberTemplate) []model.MemberTemplate {
	out := append([]model.MemberTemplate(nil), members...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func memberTemplateAsCode(mt model.MemberTemplate) string {
	if !mt.IsFunc {
		if mt.Ready {
			return fmt.Sprintf("    %s %s!", mt.FieldType, mt.Name)
		}
		return fmt.Sprintf("    %s %s;", mt.FieldType, mt.Name)
	}
	params := make([]string, len(mt.ParamTypes))
	for i := range mt.ParamTypes {
		params[i] = fmt.Sprintf("%s %s", mt.ParamTypes[i], mt.ParamNames[i])
	}
	return fmt.Sprintf("    %s %s %s(%s);", mt.Kind, mt.ReturnType, mt.Name, strings.Join(params, ", "))
}

func printAliases(sb *strings.Builder, m *model.Model) {
	names := sortedKeys(m.Aliases)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("alias %s to %s.\n", name, m.Aliases[name]))
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}
}

func printSingles(sb *strings.Builder, m *model.Model) {
	for _, name := range sortedKeys(m.Singles) {
		ch := m.Singles[name]
		sb.WriteString(singleAsCode(m, name, ch))
		sb.WriteString("\n\n")
	}
}

func singleAsCode(m *model.Model, name string, ch model.ClassHandle) string {
	cl := m.Class(ch)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("single %s {\n", name))
	writeMembers(&sb, m, cl)
	sb.WriteString("}")
	return sb.String()
}

func printClasses(sb *strings.Builder, m *model.Model) {
	for ch := range m.Classes {
		cl := m.Class(model.ClassHandle(ch))
		if cl.Placeholder {
			continue
		}
		if strings.Contains(cl.Name, "/") {
			continue
		}
		if _, isSingleBacking := singleBackingNames(m)[cl.Name]; isSingleBacking {
			continue
		}
		if cl.Name == "Void" {
			continue
		}
		sb.WriteString(classAsCode(m, cl, cl.Name))
		sb.WriteString("\n\n")
	}
}

func singleBackingNames(m *model.Model) map[string]bool {
	out := make(map[string]bool, len(m.Singles))
	for _, ch := range m.Singles {
		out[m.Class(ch).Name] = true
	}
	return out
}

func classAsCode(m *model.Model, cl *model.Class, name string) string {
	hasMembers := len(cl.Async)+len(cl.Sync)+len(cl.Objects) > 0
	if len(cl.Parents) > 0 {
		csep := strings.Join(cl.Parents, ",")
		if !hasMembers {
			return fmt.Sprintf("class %s is %s.", name, csep)
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("class %s is %s {\n", name, csep))
		writeMembers(&sb, m, cl)
		sb.WriteString("}")
		return sb.String()
	}
	if !hasMembers {
		return fmt.Sprintf("class %s.", name)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s {\n", name))
	writeMembers(&sb, m, cl)
	sb.WriteString("}")
	return sb.String()
}

// writeMembers prints a class/single's objects, then async methods, then
// sync methods, each sorted by name, matching the object/async/sync
// ordering of WandleClass.as_code and WandleSingle.as_code.
func writeMembers(sb *strings.Builder, m *model.Model, cl *model.Class) {
	for _, name := range sortedKeys(cl.Objects) {
		obj := m.Object(cl.Objects[name])
		suffix := ";"
		if obj.Ready {
			suffix = "!"
		}
		sb.WriteString(fmt.Sprintf("    %s %s%s\n", m.Class(obj.ClassH).Name, name, suffix))
	}
	for _, name := range sortedKeys(cl.Async) {
		sb.WriteString(functionAsCode(m, m.Function(cl.Async[name]), name, false))
		sb.WriteString("\n")
	}
	for _, name := range sortedKeys(cl.Sync) {
		sb.WriteString(functionAsCode(m, m.Function(cl.Sync[name]), name, false))
		sb.WriteString("\n")
	}
}

func printFlows(sb *strings.Builder, m *model.Model) {
	for _, name := range sortedKeys(m.Flows) {
		sb.WriteString(functionAsCode(m, m.Function(m.Flows[name]), name, true))
		sb.WriteString("\n\n")
	}
}

// functionAsCode prints a flow or method stub. A flow is a top-level
// declaration and so is period-terminated like every other top-level
// stub form (`flow name.`); a class/generic/single method is a member
// inside a `{ ... }` block, where the grammar's _cgs_sync_stub/
// _cgs_async_stub forms require a semicolon, not a period.
func functionAsCode(m *model.Model, f *model.Function, name string, isFlow bool) string {
	if isFlow {
		return fmt.Sprintf("flow %s.", name)
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %s", m.Class(p.ClassH).Name, p.Name)
	}
	return fmt.Sprintf("    %s %s %s(%s);", f.Kind, m.Class(f.ReturnH).Name, name, strings.Join(params, ", "))
}
