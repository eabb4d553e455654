package classify

import "fmt"

// promptContentCap bounds how much article text is sent to the model.
// Counted in runes since the text is Bengali.
const promptContentCap = 2000

// systemPrompt fixes the analyst persona and the JSON-only output contract.
const systemPrompt = `আপনি একজন নিউজ বিশ্লেষক যিনি বাংলাদেশের রাজনৈতিক সহিংসতা সনাক্ত করতে বিশেষজ্ঞ। শুধুমাত্র JSON ফরম্যাটে উত্তর দিন।`

// userPromptTemplate is the fixed instruction contract. It explicitly
// distinguishes perpetrator from victim framing, defines the severity
// ladder, and demands a single JSON object with no surrounding text.
const userPromptTemplate = `
আপনি একটি বাংলাদেশী নিউজ আর্টিকেল বিশ্লেষণ করবেন এবং রাজনৈতিক সহিংসতা সনাক্ত করবেন।

নিউজ শিরোনাম: "%s"
নিউজ বিষয়বস্তু: "%s"

অত্যন্ত গুরুত্বপূর্ণ: আমরা শুধুমাত্র সেই ঘটনাগুলি ট্র্যাক করি যেখানে একটি নির্দিষ্ট রাজনৈতিক দল সহিংসতার অপরাধী/দোষী (PERPETRATOR)।

উদাহরণ:
✅ "বিএনপি কর্মীরা একজনকে হত্যা করেছে" = বিএনপি দোষী
✅ "আওয়ামী লীগ কর্মীরা হামলা করেছে" = আওয়ামী লীগ দোষী
❌ "আওয়ামী লীগের উপর হামলা" = আওয়ামী লীগ দোষী নয়, ভিকটিম
❌ "বিএনপি নেতা আহত" = বিএনপি দোষী নয়, ভিকটিম

শুধুমাত্র PERPETRATOR দলটি গণনা করুন, ভিকটিম দল নয়।

নিম্নলিখিত তথ্যগুলো JSON ফরম্যাটে প্রদান করুন:

1. isViolentPolitical: এটি কি রাজনৈতিক সহিংসতার ঘটনা যেখানে একটি দল অপরাধী? (true/false)
2. location: ঘটনাটি কোথায় ঘটেছে? (বাংলায়)
3. casualties:
   - injured: কতজন আহত হয়েছে? (সংখ্যা)
   - killed: কতজন নিহত হয়েছে? (সংখ্যা)
4. politicalParty: কোন রাজনৈতিক দল সহিংসতার অপরাধী? (বাংলায়) - শুধুমাত্র PERPETRATOR দল
5. perpetratorRole: "aggressor" (যদি দলটি হামলাকারী), "defender" (যদি আত্মরক্ষা), "unclear" (যদি অস্পষ্ট)
6. severity: সহিংসতার মাত্রা ("light", "medium", "heavy", "severe")
7. description: ঘটনার সংক্ষিপ্ত বিবরণ (বাংলায়, ১০০ শব্দের মধ্যে)
8. confidence: আপনার বিশ্লেষণে কতটা নিশ্চিত? (০-১)

শুধুমাত্র JSON রিটার্ন করুন, অন্য কোন টেক্সট নয়।

সহিংসতার মাত্রা নির্ধারণের মাপদণ্ড:
- light: হালকা ধাক্কাধাক্কি, স্লোগান
- medium: মারামারি, ভাংচুর
- heavy: গুরুতর আঘাত, অস্ত্র ব্যবহার
- severe: হত্যা, গুলি, বোমা

দায়িত্ব নির্ধারণের নিয়ম:
- aggressor: যে দল আক্রমণ করেছে বা সহিংসতা শুরু করেছে
- defender: যে দল আত্মরক্ষা করেছে
- unclear: স্পষ্ট নয় কে দায়ী
`

// buildUserPrompt renders the instruction contract for one article,
// capping the content to control cost and latency.
func buildUserPrompt(title, content string) string {
	runes := []rune(content)
	if len(runes) > promptContentCap {
		content = string(runes[:promptContentCap])
	}
	return fmt.Sprintf(userPromptTemplate, title, content)
}
