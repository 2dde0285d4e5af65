package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

// serverTemplate is a stdio MCP server exposing a fixed prompt list.
var serverTemplate = template.Must(template.New("server").Parse(`#!/usr/bin/env node
// Generated by claudesync for skill: {{.Name}}
// Serves the skill's prompts over MCP.

import { Server } from "@modelcontextprotocol/sdk/server/index.js";
import { StdioServerTransport } from "@modelcontextprotocol/sdk/server/stdio.js";

const PROMPTS = {{.Prompts}};

const server = new Server(
  { name: {{.NameLiteral}}, version: "1.0.0" },
  { capabilities: { prompts: {} } }
);

server.setRequestHandler("prompts/list", async () => ({
  prompts: PROMPTS.map(p => ({
    name: p.name,
    description: p.description,
  })),
}));

server.setRequestHandler("prompts/get", async (request) => {
  const prompt = PROMPTS.find(p => p.name === request.params.name);
  if (!prompt) {
    throw new Error(` + "`Prompt not found: ${request.params.name}`" + `);
  }
  return {
    messages: [{ role: "user", content: { type: "text", text: prompt.text } }],
  };
});

const transport = new StdioServerTransport();
await server.connect(transport);
`))

type serverPrompt struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

// ServerStub renders the Node.js MCP server shipped inside a converted
// extension. Prompt text is embedded as a JSON literal.
func ServerStub(name string, prompts []asset.DxtPrompt) ([]byte, error) {
	list := make([]serverPrompt, len(prompts))
	for i, p := range prompts {
		list[i] = serverPrompt{Name: p.Name, Description: p.Description, Text: p.Text}
	}
	promptsJSON, err := asset.EncodeJSON(list)
	if err != nil {
		return nil, fmt.Errorf("encoding prompts: %w", err)
	}
	nameLiteral, err := json.Marshal(name)
	if err != nil {
		return nil, fmt.Errorf("encoding server name: %w", err)
	}

	var buf bytes.Buffer
	err = serverTemplate.Execute(&buf, struct {
		Name        string
		NameLiteral string
		Prompts     string
	}{
		Name:        name,
		NameLiteral: string(nameLiteral),
		Prompts:     string(bytes.TrimRight(promptsJSON, "\n")),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering server: %w", err)
	}
	return buf.Bytes(), nil
}
