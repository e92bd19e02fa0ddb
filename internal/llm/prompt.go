package llm

import "strings"

const (
	codeFence                    = "```"
	vulnerabilityTextPlaceholder = "{vulnerability_text}"
)

// ExampleAnalysisJSON пример ответа, который промпт показывает модели как формат вывода
const ExampleAnalysisJSON = `{
    "Vulnerability_Analysis": {
        "Vulnerability_ID": "CVE-YYYY-XXXXX",
        "Vulnerable_Products": [
            "Product Name (Versions < X.Y.Z)",
            "Another Product (Versions A.B.C - D.E.F)"
        ],
        "Severity": "Critical",
        "Vulnerability_Type": "Remote Code Execution",
        "Brief_Description": "A concise technical summary of the vulnerability.",
        "Exploit_Status": "Actively exploited in the wild",
        "References": [
            "https://official.vendor.com/advisory/CVE-YYYY-XXXXX",
            "https://nvd.nist.gov/vuln/detail/CVE-YYYY-XXXXX"
        ]
    },
    "Potential_Impact": "A detailed description of the worst-case scenario upon exploitation.",
    "Actionable_Recommendation": {
        "Primary_Mitigation": "Apply vendor-provided patch KBXXXXXX. Upgrade affected systems to the latest secure version.",
        "Secondary_Mitigations_Workarounds": [
            "Implement IPS/IDS signatures.",
            "Restrict network access to vulnerable services."
        ],
        "Urgency_Level": "Immediate",
        "Verification_Steps": [
            "Conduct authenticated vulnerability scans.",
            "Verify product version numbers."
        ]
    }
}`

// vulnerabilityAnalysisPromptTemplate промпт для разбора сырого отчёта об уязвимости.
// Текст отчёта подставляется вместо {vulnerability_text} без изменений.
const vulnerabilityAnalysisPromptTemplate = `
You are an expert cybersecurity analyst with extensive knowledge of vulnerability management and patch processes.
Your task is to analyze the provided raw vulnerability report.
From this report, you must extract all critical information, assess its potential impact, and provide a clear, actionable recommendation for a security operations team.

**Strictly adhere to the following steps and output format:**

1.  **Extract Key Details**: Identify the following. If a detail is not explicitly provided in the *given raw report*, state "Not provided" or "N/A" for lists:
    * **Vulnerability_ID**: The official ID (e.g., CVE-YYYY-XXXXX, Vendor-Specific-ID, or internal tracking ID).
    * **Vulnerable_Products**: A list of affected software/hardware, including specific versions or version ranges if mentioned.
    * **Severity**: Rate as Critical, High, Medium, or Low. Provide a brief justification based solely on the report's content.
    * **Vulnerability_Type**: Briefly describe the class of vulnerability (e.g., Remote Code Execution (RCE), SQL Injection, Cross-Site Scripting (XSS), Denial of Service (DoS), Privilege Escalation, Information Disclosure, Buffer Overflow).
    * **Brief_Description**: A concise, technical summary (1-3 sentences) of what the vulnerability is and how it functions.
    * **Exploit_Status**: Is it actively exploited in the wild, publicly disclosed (Proof-of-Concept available), theoretical, or unknown based on the report?
    * **References**: A list of relevant links to official advisories, patches, security blogs, or NVD entries.

2.  **Assess Potential Impact**:
    * Describe the worst-case scenario if this vulnerability is successfully exploited.
    * Consider potential consequences like data compromise (confidentiality, integrity, availability), financial loss, or reputational damage.
    * This should be a concise paragraph (2-4 sentences).

3.  **Provide Actionable Recommendation**:
    * **Primary_Mitigation**: The most direct and important action to take (e.g., "Apply vendor patch KBXXXXXX", "Upgrade to version A.B.C", "Implement specific configuration change").
    * **Secondary_Mitigations_Workarounds**: A list of additional protective measures or temporary fixes if the primary mitigation is not immediately possible (e.g., "Block port YYYY at firewall", "Disable feature Z", "Implement IPS/IDS rule"). State "N/A" if none are mentioned or obvious.
    * **Urgency_Level**: Assign a practical urgency: "Immediate" (within hours/day), "High Priority" (within 1-3 days), "Medium Priority" (within 1 week), or "Low Priority" (plan for next patch cycle). Justify briefly based on severity, exploit status, and potential impact.
    * **Verification_Steps**: A list of steps the team can take to confirm the mitigation was successful (e.g., "Run vulnerability scan with Tool A", "Check product version to confirm upgrade", "Monitor logs for abnormal activity"). State "N/A" if none are mentioned or obvious.

4.  **Format the entire output as a single, valid JSON object.**
    * Ensure all keys are enclosed in double quotes.
    * Lists must be JSON arrays (` + "`[]`" + `).
    * Do not include any introductory or concluding text, or markdown code block delimiters (` +
	codeFence +
	`json) outside the JSON object itself.

---
**RAW VULNERABILITY REPORT:**
{vulnerability_text}
---

**STRICTLY ADHERE TO THIS JSON OUTPUT FORMAT:**
` +
	codeFence +
	`json
` +
	ExampleAnalysisJSON +
	`
` +
	codeFence

// BuildVulnerabilityAnalysisPrompt подставляет текст отчёта в шаблон
func BuildVulnerabilityAnalysisPrompt(vulnerabilityText string) string {
	return strings.Replace(vulnerabilityAnalysisPromptTemplate, vulnerabilityTextPlaceholder, vulnerabilityText, 1)
}
