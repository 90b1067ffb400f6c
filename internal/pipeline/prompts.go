package pipeline

const querySystemPrompt = "You are a helpful assistant that generates search queries based on summaries."

const queryUserFormat = "Generated Summary: %s. Generate a short search query for Google. Output only the query."

const classifySystemPrompt = `You classify news summaries into exactly one STEEP category.
The categories are: Social, Technological, Economic, Environmental, Political.
Respond with the single category name only, no other text.`

const classifyUserFormat = "Classify this news summary: %s"

const synthesisSystemPrompt = `You are a research assistant. Given a news summary and excerpts
gathered from academic and news searches, write a combined research report:
what the sources agree on, where they diverge, and what the article adds.
Keep it factual and cite the source sections by name.`

const synthesisUserFormat = "News summary:\n%s\n\nGathered materials:\n%s"

const keywordSystemPrompt = `You extract and explain keywords. Given a news summary, list the
3-5 most important terms with a one-sentence explanation each.`

const keywordUserFormat = "Explain the key terms in this summary: %s"

const tickerSystemPrompt = `You map economic news to a single publicly traded company.
Respond with the stock ticker symbol only (for example: AAPL). No other text.`

const tickerUserFormat = "Name the most relevant stock ticker for this news summary: %s"

const groundedSystemPrompt = `You are a research assistant. Write a report grounded strictly in
the provided document passages. If the passages do not cover a point in
the summary, say so rather than inventing content.`

const groundedUserFormat = "Document passages:\n%s\n\nNews summary:\n%s"
