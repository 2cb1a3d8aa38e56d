/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package marker

import (
	"regexp"
	"strconv"
)

const (
	tabstopToken     = ReservedPrefix + "tabstop_"
	placeholderToken = ReservedPrefix + "placeholder_"

	// methodComment precedes the function keyword added by the Method rule,
	// so a body that really starts with "function name(" is left alone.
	methodComment = "/*" + ReservedPrefix + "method__*/"

	// superComment opens the block comment hiding a super(...) call.
	superComment = "/*" + ReservedPrefix + "super__"
)

// Tabstop hides single-digit tabstops such as $1.
// Only one digit is captured: $12 becomes tabstop 1 followed by a literal 2.
var Tabstop = Rule{
	Name: "tabstop",
	Snippet: Pattern{
		Re:       regexp.MustCompile(`\$(\d)`),
		Template: tabstopToken + "${1}",
		Global:   true,
	},
	Variable: Pattern{
		Re:       regexp.MustCompile(regexp.QuoteMeta(tabstopToken) + `(\d)`),
		Template: "$$${1}",
		Global:   true,
	},
}

// Placeholder hides placeholders with a word-character default, such as ${1:name}.
// Defaults containing spaces or punctuation are not matched.
//
// The token records the length of the default, as in __snip_placeholder_1_4_name,
// so word characters written right after the placeholder stay outside it.
var Placeholder = Rule{
	Name: "placeholder",
	Snippet: Pattern{
		Re: regexp.MustCompile(`\$\{(\d):(\w+)\}`),
		Func: func(groups []string) string {
			return placeholderToken + groups[1] + "_" + strconv.Itoa(len(groups[2])) + "_" + groups[2]
		},
		Global: true,
	},
	Variable: Pattern{
		Re:     placeholderVariableRe,
		Func:   restorePlaceholder,
		Global: true,
	},
}

var placeholderVariableRe = regexp.MustCompile(regexp.QuoteMeta(placeholderToken) + `(\d)_(\d+)_(\w+)`)

// restorePlaceholder takes the recorded number of characters as the default.
// The rest of the match is ordinary text that may hold further tokens.
func restorePlaceholder(groups []string) string {
	n, err := strconv.Atoi(groups[2])
	if err != nil || n < 1 || n > len(groups[3]) {
		return groups[0]
	}
	rest := Pattern{Re: placeholderVariableRe, Func: restorePlaceholder, Global: true}.Replace(groups[3][n:])
	return "${" + groups[1] + ":" + groups[3][:n] + "}" + rest
}

// markerArgs matches a parameter list of identifiers and the markers
// restored before the method rule is undone.
const markerArgs = `(?:[\w$]|\$\{\d:\w+\})*(?:,\s*(?:[\w$]|\$\{\d:\w+\})+)*`

var (
	methodSnippetRe  = regexp.MustCompile(`(^(\w+)\((?:\w*(,\s\w+)?){1,}\)\s*\{[\s\S]*)`)
	methodVariableRe = regexp.MustCompile(`^` + regexp.QuoteMeta(methodComment) + `\s*function (\w+\(` + markerArgs + `\)\s*\{[\s\S]*)`)

	// statementKeywords look like method signatures ("if(a) {") but are not.
	statementKeywords = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true,
		"catch": true, "with": true, "function": true, "return": true,
	}

	// Only the first super(...) call is wrapped and unwrapped.
	superWrap = Pattern{
		Re:       regexp.MustCompile(`(super\((?:\w+(,\s\w+)?){1,}\))`),
		Template: superComment + " ${1} */",
	}
	superUnwrap = Pattern{
		Re:       regexp.MustCompile(regexp.QuoteMeta(superComment) + `\s(super\(` + markerArgs + `\))\s\*/`),
		Template: "${1}",
	}
)

// Method turns a bare class-method body such as
//
//	constructor(a, b) {
//	  super(a, b);
//	}
//
// into a function declaration, commenting out the first super(...) call
// which is only legal inside a class. The signature must open a block and
// must start the body; a plain call such as foo(x) is left untouched.
var Method = Rule{
	Name: "method",
	Snippet: Pattern{
		Re: methodSnippetRe,
		Func: func(groups []string) string {
			if statementKeywords[groups[2]] {
				return groups[0]
			}
			return superWrap.Replace(methodComment + " function " + groups[1])
		},
	},
	Variable: Pattern{
		Re: methodVariableRe,
		Func: func(groups []string) string {
			return superUnwrap.Replace(groups[1])
		},
	},
}
