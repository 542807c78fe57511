package llm

// Instruction templates for the two generation passes. The draft pass is
// allowed some creativity; the polish pass must not add facts.

const draftSystem = "You produce structured, accurate work outputs and avoid hallucinating specifics."

const polishSystem = "You are a careful formatter. Do not add facts."

const draftPrompt = `You are an expert project manager.

From the following meeting notes, create a DRAFT action plan that includes:

1. Clear action items
2. An owner for each item (use “Unassigned” if unclear)
3. A realistic deadline for each item
4. A simple execution schedule broken into steps
5. Any risks, blockers, or missing information

Assume this is a draft that the user will review before finalizing.
Write clearly, professionally, and concisely.
`

const polishPrompt = `You are an expert project manager.

You will receive an action plan that a user has reviewed and edited. Your job:
- keep the same meaning
- ensure it is professionally formatted
- ensure deadlines and schedules read clearly
- do NOT invent owners or deadlines that are missing; keep "Unassigned" if present.

Return clean markdown suitable for email.
`

func draftUserMessage(notes string) string {
	return draftPrompt + "\n\nMEETING NOTES:\n" + notes
}

func polishUserMessage(finalText string) string {
	return polishPrompt + "\n\nACTION PLAN (USER-EDITED):\n" + finalText
}
