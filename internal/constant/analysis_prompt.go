package constant

// NoMentionMarker is the literal the scoring model must use in the evidence
// field when a rubric item is not mentioned in the target message.
const NoMentionMarker = "言及なし"

// AnalysisPromptHeaderV1 states the scoring criteria shared by every
// (message, category) call.
const AnalysisPromptHeaderV1 = `以下のインタビュー内容を分析し、指定されたカテゴリの各項目について、
回答者の言及状況を評価してください。

評価基準:
- ポジティブな言及があれば「1」
- ネガティブな言及があれば「-1」
- 言及がなければ「0」

**重要な指示:**
- 根拠には必ず対象メッセージ内の回答者の実際の発言を忠実に抽出すること
- 会話の文脈は理解のために使い、根拠の引用は対象メッセージのみから行うこと
- 根拠がある場合は、「【「回答者の実際の発言」と発言】」という形式で記載すること
- 言及がない場合は「` + NoMentionMarker + `」と記載すること`

// AnalysisPromptFooterV1 pins the required output shape. The reply may
// contain commentary around the fenced block; only the block is decoded.
const AnalysisPromptFooterV1 = `**出力形式（必ずこの形式のJSONで出力してください）:**
` + "```json" + `
[
  { "id": "A1", "item": "項目の要約", "evaluation": 0, "evidence": "` + NoMentionMarker + `" },
  { "id": "A2", "item": "項目の要約", "evaluation": 1, "evidence": "【「回答者の実際の発言」と発言】" }
]
` + "```" + `
カテゴリの10項目すべてについて、この順番で1レコードずつ出力してください。`
