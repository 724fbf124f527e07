package enrich

// Prompt is the fixed extraction instruction sent with every page.
const Prompt = `Extract the news information from the news page below and answer with a single JSON object.

Extract these fields only when they are present in the page, otherwise use the string "NA":
- "title"
- "author"
- "date"
- "article": the full article text
- "keywords": list of strings
- "image_links": list of URLs
- "video_links": list of URLs
- "related_news_links": list of URLs

Generate these fields from the extracted information:
- "sentiment": one of "positive", "negative", "neutral"
- "summary": list of precise bullet points, each under 100 words
- "explained_summary": a text summary with history and context so that a new reader can follow the story
- "importance_rating": integer from 1 to 10, where 10 is breaking news and 1 is not important`
