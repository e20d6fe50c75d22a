package dispatch

import (
	"fmt"
	"strings"

	"github.com/lexrelay/lexrelay/apimodels"
)

var SystemPrompt = `You are a legal-document assistant helping users understand contracts, statutes, and legal filings.
Be precise and cite the relevant law where you can. You are not a substitute for a licensed attorney;
note that when a question calls for formal legal advice. Answer in the language of the question unless told otherwise.`

func buildQuestionPrompt(p apimodels.QuestionParams) string {
	var b strings.Builder
	b.WriteString("Answer the following legal question. Include relevant statutes, regulations, or case law where applicable, and flag any jurisdiction-specific caveats.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", p.Question)
	if p.Context != "" {
		fmt.Fprintf(&b, "\nDocument context:\n%s\n", p.Context)
	}
	return b.String()
}

func buildSummarizePrompt(p apimodels.SummarizeParams) string {
	summaryType := p.SummaryType
	if summaryType == "" {
		summaryType = "brief"
	}
	summaryLength := p.SummaryLength
	if summaryLength == "" {
		summaryLength = "medium"
	}
	return fmt.Sprintf(`Summarize the following legal document.
Summary type: %s
Summary length: %s
Preserve defined terms, party names, obligations, and deadlines. Do not add information that is not in the document.

Document:
%s
`, summaryType, summaryLength, p.DocumentText)
}

func buildTranslatePrompt(text string, p apimodels.TranslateParams) string {
	return fmt.Sprintf(`Translate the following legal text from %s to %s.
Preserve legal terms of art; where a term has no direct equivalent, keep the original term in parentheses after your translation.
Return only the translation, with no commentary.

Text:
%s
`, p.SourceLang, p.TargetLang, text)
}

func buildSearchPrompt(p apimodels.SearchParams) string {
	var b strings.Builder
	b.WriteString("Perform a semantic search over the documents below. Rank the passages most relevant to the query, quote each passage, and explain in one sentence why it matches.\n\n")
	fmt.Fprintf(&b, "Query: %s\n", p.Query)
	for i, doc := range p.Corpus {
		fmt.Fprintf(&b, "\n--- Document %d ---\n%s\n", i+1, doc)
	}
	return b.String()
}

func buildComparePrompt(p apimodels.CompareParams) string {
	return fmt.Sprintf(`Compare the two legal documents below. Identify clauses present in one but not the other, clauses that differ in substance, and any conflicting obligations. Present the differences as a numbered list, most significant first.

--- Document 1 ---
%s

--- Document 2 ---
%s
`, p.Document1, p.Document2)
}

func buildRiskPrompt(p apimodels.RiskParams) string {
	var b strings.Builder
	b.WriteString("Assess the legal risk of the following document. Identify ambiguous terms, one-sided obligations, missing protective clauses, and compliance exposure.\n")
	b.WriteString("End your analysis with a line of exactly this form:\nOverall risk level: <Low|Medium|High>\n\n")
	if p.Jurisdiction != "" {
		fmt.Fprintf(&b, "Jurisdiction: %s\n\n", p.Jurisdiction)
	}
	fmt.Fprintf(&b, "Document:\n%s\n", p.DocumentText)
	return b.String()
}
