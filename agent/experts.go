package agent

import (
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to understand their personal finances: net worth, investments and spending.
			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			Answer in markdown, quote figures exactly as the experts gave them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates the expert grounded on Google Search, for news
// about the securities and markets of the user.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert in financial markets,
		aware of the financial products and institutions, and of the latest news about funds and companies.
		Ask the Researcher whenever you need recent or grounding information about a ticker or a market.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find about anything related to
			financial institutions, companies, markets and funds. You leverage Google Search to
			ground your assertions in a solid truth.
			`}}},
		},
	}
}

// NewAnalyst creates the expert reading the user's workbook. The workbook
// is loaded on each tool call.
func NewAnalyst(load Loader) *Expert {
	lib := analystTools(load)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's wealth workbook: assets, net worth history,
		trades, portfolio valuations, income, expenses and the spending journal.
		They compute net worth attribution, portfolio performance, positions, spending hierarchies and spending flows
		for any time window.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst in charge of the user's wealth workbook.
			You know how to use the Tools to extract relevant figures about the user's wealth.
			You are part of a team of experts, they might ask you questions in approximate language,
			figure out which window (focus) and which report answer them best.
			Read the documentation topics when unsure about the meaning of a figure.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}
