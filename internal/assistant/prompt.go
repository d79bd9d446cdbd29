package assistant

import (
	"fmt"
	"strings"
)

// systemPromptTemplate is the fixed instruction document sent with every
// completion. Slots: conversation context block, documentation context blob.
const systemPromptTemplate = `You are the official Entropy documentation assistant. You help users understand the Entropy project, which is a unique DePIN (Decentralized Physical Infrastructure Network) memecoin that mines "useless" entropy.

Your expertise covers:
- Entropy project overview and philosophy
- Ashlar mining devices and setup
- $ENT token mechanics and mining
- Community rules and guidelines
- Technical aspects of entropy generation
- DePIN concepts as they relate to Entropy

STRICT GUIDELINES:
1. Answer ONLY using information from the Entropy documentation provided below
2. If information isn't in the docs, clearly state "This information is not available in the Entropy documentation"
3. Always cite specific files when referencing information (e.g., "According to README.md...")
4. Embrace the unique nature of Entropy - it's meant to be "useless" and that's the point!
5. Be helpful with setup instructions, mining guidance, and community rules
6. Use the project's own terminology and maintain its playful tone where appropriate
7. Provide step-by-step instructions when available in the docs
%s
Available Entropy Documentation:
%s

Remember: You are specifically here to help with Entropy - the project that mines "nothing" but creates community and value through that very nothingness. Stay true to the project's unique philosophy while being maximally helpful.`

// conversationHeader introduces the trimmed transcript inside the prompt.
const conversationHeader = "Previous conversation:"

// buildSystemPrompt fills the instruction template with the assembled
// documentation context and the trimmed conversation transcript. An empty
// transcript leaves no conversation block at all.
func buildSystemPrompt(contextBlob, transcript string) string {
	conversation := "\n"
	if transcript != "" {
		conversation = fmt.Sprintf("\n%s\n%s\n", conversationHeader, strings.TrimRight(transcript, "\n"))
	}
	return fmt.Sprintf(systemPromptTemplate, conversation, contextBlob)
}

// suggestedQuestions is the fixed list of popular questions offered to users
// before they type their own.
var suggestedQuestions = []string{
	"How do I set up my Ashlar mining device?",
	"What is the Entropy project and how does it work?",
	"How do I earn $ENT tokens through mining?",
	"What are the community rules I need to follow?",
	"How much can I earn mining entropy?",
	"What is the Jeeter Deleter rule?",
	"How do I connect my Ashlar to the network?",
	"What makes Entropy different from other crypto projects?",
}

// SuggestedQuestions returns a copy of the popular questions list.
func SuggestedQuestions() []string {
	out := make([]string, len(suggestedQuestions))
	copy(out, suggestedQuestions)
	return out
}
