package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/metro-lang/metro/internal/ast"
)

// dumpFile writes an indented tree of file's top-level items to w, for
// `run --dump-ast` and for the `parse` subcommand's output.
func dumpFile(w io.Writer, f *ast.File, indent int) {
	for _, item := range f.Items {
		dumpStmt(w, item, indent)
	}
}

func pad(indent int) string { return strings.Repeat("  ", indent) }

func dumpStmt(w io.Writer, s ast.Stmt, indent int) {
	switch n := s.(type) {
	case *ast.Function:
		fmt.Fprintf(w, "%sFunction %s(%d params)\n", pad(indent), n.Name, len(n.Params))
		dumpStmt(w, n.Body, indent+1)
	case *ast.Struct:
		fmt.Fprintf(w, "%sStruct %s(%d members)\n", pad(indent), n.Name, len(n.Members))
	case *ast.Enum:
		fmt.Fprintf(w, "%sEnum %s(%d enumerators)\n", pad(indent), n.Name, len(n.Enumerators))
	case *ast.Impl:
		fmt.Fprintf(w, "%sImpl %s(%d functions)\n", pad(indent), n.TargetName, len(n.Functions))
		for _, fn := range n.Functions {
			dumpStmt(w, fn, indent+1)
		}
	case *ast.Scope:
		fmt.Fprintf(w, "%sScope(%d items)\n", pad(indent), len(n.Items))
		for _, it := range n.Items {
			dumpStmt(w, it, indent+1)
		}
	case *ast.ExprStmt:
		fmt.Fprintf(w, "%sExprStmt\n", pad(indent))
		dumpExpr(w, n.X, indent+1)
	case *ast.VariableDeclaration:
		kw := "let"
		if n.IsConst {
			kw = "const"
		}
		fmt.Fprintf(w, "%sVariableDeclaration(%s %s)\n", pad(indent), kw, n.Name)
		if n.Init != nil {
			dumpExpr(w, n.Init, indent+1)
		}
	case *ast.Return:
		fmt.Fprintf(w, "%sReturn\n", pad(indent))
		if n.Value != nil {
			dumpExpr(w, n.Value, indent+1)
		}
	case *ast.Break:
		fmt.Fprintf(w, "%sBreak\n", pad(indent))
	case *ast.Continue:
		fmt.Fprintf(w, "%sContinue\n", pad(indent))
	case *ast.If:
		fmt.Fprintf(w, "%sIf\n", pad(indent))
		dumpExpr(w, n.Cond, indent+1)
		dumpStmt(w, n.Then, indent+1)
		if n.Else != nil {
			dumpStmt(w, n.Else, indent+1)
		}
	case *ast.Switch:
		fmt.Fprintf(w, "%sSwitch(%d cases)\n", pad(indent), len(n.Cases))
		dumpExpr(w, n.Subject, indent+1)
		for _, c := range n.Cases {
			dumpStmt(w, c.Body, indent+1)
		}
		if n.Default != nil {
			dumpStmt(w, n.Default, indent+1)
		}
	case *ast.Loop:
		fmt.Fprintf(w, "%sLoop\n", pad(indent))
		dumpStmt(w, n.Body, indent+1)
	case *ast.For:
		fmt.Fprintf(w, "%sFor\n", pad(indent))
		dumpExpr(w, n.Iterable, indent+1)
		dumpStmt(w, n.Body, indent+1)
	case *ast.While:
		fmt.Fprintf(w, "%sWhile\n", pad(indent))
		dumpExpr(w, n.Cond, indent+1)
		dumpStmt(w, n.Body, indent+1)
	case *ast.DoWhile:
		fmt.Fprintf(w, "%sDoWhile\n", pad(indent))
		dumpStmt(w, n.Body, indent+1)
		dumpExpr(w, n.Cond, indent+1)
	default:
		fmt.Fprintf(w, "%s%T\n", pad(indent), s)
	}
}

func dumpExpr(w io.Writer, e ast.Expr, indent int) {
	switch n := e.(type) {
	case *ast.ValueLit:
		fmt.Fprintf(w, "%sValueLit %q\n", pad(indent), n.Tok.Text)
	case *ast.NoneLit:
		fmt.Fprintf(w, "%sNone\n", pad(indent))
	case *ast.TrueLit:
		fmt.Fprintf(w, "%sTrue\n", pad(indent))
	case *ast.FalseLit:
		fmt.Fprintf(w, "%sFalse\n", pad(indent))
	case *ast.Variable:
		fmt.Fprintf(w, "%sVariable %s\n", pad(indent), n.Name)
	case *ast.BinaryExpr:
		fmt.Fprintf(w, "%sBinaryExpr\n", pad(indent))
		dumpExpr(w, n.Left, indent+1)
		for _, t := range n.Tail {
			fmt.Fprintf(w, "%s%s\n", pad(indent+1), t.Op.String())
			dumpExpr(w, t.Operand, indent+2)
		}
	case *ast.CompareExpr:
		fmt.Fprintf(w, "%sCompareExpr\n", pad(indent))
		dumpExpr(w, n.Left, indent+1)
		for _, t := range n.Tail {
			fmt.Fprintf(w, "%s%s\n", pad(indent+1), t.Op.String())
			dumpExpr(w, t.Operand, indent+2)
		}
	case *ast.Assign:
		fmt.Fprintf(w, "%sAssign\n", pad(indent))
		dumpExpr(w, n.Target, indent+1)
		dumpExpr(w, n.Value, indent+1)
	case *ast.CallFunc:
		fmt.Fprintf(w, "%sCallFunc %s(%d args)\n", pad(indent), n.Name, len(n.Args))
		for _, a := range n.Args {
			dumpExpr(w, a, indent+1)
		}
	case *ast.IndexRef:
		fmt.Fprintf(w, "%sIndexRef(%d subscripts)\n", pad(indent), len(n.Subscripts))
		dumpExpr(w, n.Base, indent+1)
	case *ast.Vector:
		fmt.Fprintf(w, "%sVector(%d elements)\n", pad(indent), len(n.Elements))
	case *ast.Dict:
		fmt.Fprintf(w, "%sDict(%d entries)\n", pad(indent), len(n.Entries))
	case *ast.Range:
		fmt.Fprintf(w, "%sRange\n", pad(indent))
	case *ast.StructConstructor:
		fmt.Fprintf(w, "%sStructConstructor %s(%d fields)\n", pad(indent), n.Type.Name, len(n.Fields))
	case *ast.NewEnumerator:
		fmt.Fprintf(w, "%sNewEnumerator %s.%s\n", pad(indent), n.EnumName, n.EnumeratorName)
	case *ast.Cast:
		fmt.Fprintf(w, "%sCast -> %s\n", pad(indent), n.Target.Name)
		dumpExpr(w, n.X, indent+1)
	case *ast.UnaryMinus:
		fmt.Fprintf(w, "%sUnaryMinus\n", pad(indent))
		dumpExpr(w, n.X, indent+1)
	case *ast.UnaryPlus:
		fmt.Fprintf(w, "%sUnaryPlus\n", pad(indent))
		dumpExpr(w, n.X, indent+1)
	default:
		fmt.Fprintf(w, "%s%T\n", pad(indent), e)
	}
}
