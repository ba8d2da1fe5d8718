package sema

import (
	"fmt"

	"umlts/internal/diag"
	"umlts/internal/ir"
)

// abstractLeafRule: abstract contradicts leaf and final.
type abstractLeafRule struct{}

func (abstractLeafRule) Name() string { return "abstract-leaf" }

func (abstractLeafRule) CheckEntity(ctx *RuleContext, subj EntitySubject) {
	e := subj.Entity
	if !e.IsAbstract || (!e.IsLeaf && !e.IsFinal) {
		return
	}
	what := "leaf"
	if e.IsFinal {
		what = "final"
	}
	diag.ReportError(ctx.Reporter, diag.SemaAbstractLeaf, subj.Span,
		fmt.Sprintf("%q cannot be both abstract and %s", e.Name, what)).Emit()
}

// classLike folds association classes into classes for kind checks.
func classLike(k ir.EntityKind) ir.EntityKind {
	if k == ir.KindAssociationClass {
		return ir.KindClass
	}
	return k
}

// inheritanceKindRule: class extends class, interface extends interface;
// data types bridge both.
type inheritanceKindRule struct{}

func (inheritanceKindRule) Name() string { return "inheritance-kind" }

func (inheritanceKindRule) CheckRelationship(ctx *RuleContext, subj RelationshipSubject) {
	if subj.Rel.Kind != ir.RelGeneralization {
		return
	}
	from, to := classLike(subj.From.Kind), classLike(subj.To.Kind)
	if from == ir.KindPackage || to == ir.KindPackage {
		return // packageTargetRule
	}
	if from == to || from == ir.KindDataType || to == ir.KindDataType {
		return
	}
	diag.ReportError(ctx.Reporter, diag.SemaInheritanceKind, subj.Span,
		fmt.Sprintf("%s %q cannot extend %s %q", kindLabel(subj.From.Kind), subj.From.Name, kindLabel(subj.To.Kind), subj.To.Name)).
		WithNote(ctx.EntitySpan(subj.To.ID), "target declared here").
		Emit()
}

// inheritanceTargetRule: leaf and final classifiers have no children.
type inheritanceTargetRule struct{}

func (inheritanceTargetRule) Name() string { return "inheritance-target" }

func (inheritanceTargetRule) CheckRelationship(ctx *RuleContext, subj RelationshipSubject) {
	if subj.Rel.Kind != ir.RelGeneralization || (!subj.To.IsLeaf && !subj.To.IsFinal) {
		return
	}
	what := "leaf"
	if subj.To.IsFinal {
		what = "final"
	}
	diag.ReportError(ctx.Reporter, diag.SemaExtendsLeaf, subj.Span,
		fmt.Sprintf("%q cannot extend %s %q", subj.From.Name, what, subj.To.Name)).
		WithNote(ctx.EntitySpan(subj.To.ID), "declared "+what+" here").
		Emit()
}

// rootParentRule: a root classifier has no parent.
type rootParentRule struct{}

func (rootParentRule) Name() string { return "root-parent" }

func (rootParentRule) CheckRelationship(ctx *RuleContext, subj RelationshipSubject) {
	if subj.Rel.Kind != ir.RelGeneralization || !subj.From.IsRoot {
		return
	}
	diag.ReportError(ctx.Reporter, diag.SemaRootHasParent, subj.Span,
		fmt.Sprintf("root %q cannot extend %q", subj.From.Name, subj.To.Name)).Emit()
}

// realizationRule: class/enum/datatype realize interface/datatype.
type realizationRule struct{}

func (realizationRule) Name() string { return "realization-kind" }

func (realizationRule) CheckRelationship(ctx *RuleContext, subj RelationshipSubject) {
	if subj.Rel.Kind != ir.RelRealization {
		return
	}
	switch classLike(subj.From.Kind) {
	case ir.KindClass, ir.KindEnum, ir.KindDataType:
	default:
		diag.ReportError(ctx.Reporter, diag.SemaRealizationKind, subj.Span,
			fmt.Sprintf("%s %q cannot realize anything", kindLabel(subj.From.Kind), subj.From.Name)).Emit()
		return
	}
	switch subj.To.Kind {
	case ir.KindInterface, ir.KindDataType:
	default:
		diag.ReportError(ctx.Reporter, diag.SemaRealizationKind, subj.Span,
			fmt.Sprintf("%q can only realize an interface, %q is %s", subj.From.Name, subj.To.Name, kindLabel(subj.To.Kind))).
			WithNote(ctx.EntitySpan(subj.To.ID), "target declared here").
			Emit()
	}
}

// enumWholeRule: an enumeration cannot own parts.
type enumWholeRule struct{}

func (enumWholeRule) Name() string { return "enum-whole" }

func (enumWholeRule) CheckRelationship(ctx *RuleContext, subj RelationshipSubject) {
	k := subj.Rel.Kind
	if (k != ir.RelComposition && k != ir.RelAggregation) || subj.From.Kind != ir.KindEnum {
		return
	}
	diag.ReportError(ctx.Reporter, diag.SemaEnumWhole, subj.Span,
		fmt.Sprintf("enumeration %q cannot be the whole of a %s", subj.From.Name, k)).Emit()
}

// packageTargetRule: only dependencies may point at a package.
type packageTargetRule struct{}

func (packageTargetRule) Name() string { return "package-target" }

func (packageTargetRule) CheckRelationship(ctx *RuleContext, subj RelationshipSubject) {
	if subj.To.Kind != ir.KindPackage || subj.Rel.Kind == ir.RelDependency {
		return
	}
	diag.ReportError(ctx.Reporter, diag.SemaPackageTarget, subj.Span,
		fmt.Sprintf("package %q can only be the target of a dependency, not %s", subj.To.ID, subj.Rel.Kind)).Emit()
}

func kindLabel(k ir.EntityKind) string {
	switch k {
	case ir.KindInterface:
		return "interface"
	case ir.KindEnum:
		return "enum"
	case ir.KindDataType:
		return "datatype"
	case ir.KindAssociationClass:
		return "association class"
	case ir.KindPackage:
		return "package"
	default:
		return "class"
	}
}
