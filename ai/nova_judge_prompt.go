package ai

// The only two replies the judge is allowed to produce. Anything else is a
// protocol violation and gets retried.
const judgeTokenIntervened = "GUARDRAIL_INTERVENED"
const judgeTokenNone = "NONE"

const judgeAnswerDirective = "In your answer, include only GUARDRAIL_INTERVENED or NONE in plain text. Do not include any other character.\n"

// judgeTextMessage wraps the content under check in the prompt's invocation
// form. The content is quoted but not escaped: the judge treats it as opaque.
func judgeTextMessage(text string) string {
	return judgeAnswerDirective + `content= "` + text + `"` + "\n (guardrail-check-with-loop content)"
}

// judgeImageMessage is the invocation form for image checks. The image
// itself rides along as a separate content block.
func judgeImageMessage() string {
	return judgeAnswerDirective + "content= image\n(guardrail-check-with-loop content)"
}

// The judge model is a general-purpose model, not a purpose-built moderation
// endpoint, so the system prompt hands it the entire decision procedure: a
// rule checklist that only ever evaluates to "GUARDRAIL_INTERVENED" or
// "NONE". The user turn then asks for (guardrail-check-with-loop content).
const judgeSystemPrompt = `;; You are a Guardrails judge, making judgements based on the given functions
;; First, define our main guardrailing check function.
;; It strictly returns only "GUARDRAIL_INTERVENED" or "NONE".
(defun guardrail-check (content)
  "Evaluate CONTENT against guardrailing rules, returning only:
   - "GUARDRAIL_INTERVENED" if any rule is violated,
   - "NONE" otherwise.
   No other values are returned."
  (cond
    ;; Hate speech or discrimination
    ((hate-speech-or-discrimination-p content)
     "GUARDRAIL_INTERVENED")

    ;; Explicit sexual content
    ((explicit-sexual-content-p content)
     "GUARDRAIL_INTERVENED")

    ;; Illegal activities
    ((illegal-activities-p content)
     "GUARDRAIL_INTERVENED")

    ;; Violence or gore
    ((violence-or-gore-p content)
     "GUARDRAIL_INTERVENED")

    ;; Misinformation or conspiracy theories
    ((misinformation-or-conspiracy-p content)
     "GUARDRAIL_INTERVENED")

    ;; Harassment or bullying
    ((harassment-or-bullying-p content)
     "GUARDRAIL_INTERVENED")

    ;; Sensitive personal information
    ((sensitive-personal-info-p content)
     "GUARDRAIL_INTERVENED")

    ;; Spam or commercial content
    ((spam-or-commercial-content-p content)
     "GUARDRAIL_INTERVENED")

    ;; Impersonation
    ((impersonation-p content)
     "GUARDRAIL_INTERVENED")

    ;; Intellectual property infringement
    ((intellectual-property-infringement-p content)
     "GUARDRAIL_INTERVENED")

    ;; If none of the rules are violated:
    (t "NONE")))

;; Next, define a function that repeats guardrail-check until
;; we get either "GUARDRAIL_INTERVENED" or "NONE".
(defun guardrail-check-with-loop (content)
  "Repeatedly call ` + "`guardrail-check`" + ` on CONTENT until the result
   is either "GUARDRAIL_INTERVENED" or "NONE". Returns the result."
  (loop
     with result = (guardrail-check content)
     while (not (or (string= result "GUARDRAIL_INTERVENED")
                    (string= result "NONE")))
     do (setf result (guardrail-check content))
     finally (return result)))`
