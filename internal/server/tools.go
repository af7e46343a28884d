package server

// Tool name and parameter defaults for the single exposed capability.
const (
	toolGenerateImage = "generate_image"

	defaultNumberOfImages   = 1
	defaultAspectRatio      = "9:16"
	defaultSampleImageSize  = "2K"
	defaultPersonGeneration = "allow_adult"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        toolGenerateImage,
			Description: "Generate images from a text prompt using Google's Imagen model. Images are saved as PNG files and the resulting paths are returned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "Text description of the image to generate",
					},
					"numberOfImages": map[string]interface{}{
						"type":        "number",
						"description": "Number of images to generate (1-4). Default 1",
						"minimum":     1,
						"maximum":     4,
						"default":     defaultNumberOfImages,
					},
					"aspectRatio": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1:1", "3:4", "4:3", "9:16", "16:9"},
						"description": "Aspect ratio of the generated images. Default 9:16",
						"default":     defaultAspectRatio,
					},
					"sampleImageSize": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1K", "2K"},
						"description": "Resolution of the generated images. Default 2K",
						"default":     defaultSampleImageSize,
					},
					"personGeneration": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"dont_allow", "allow_adult", "allow_all"},
						"description": "Whether generated images may contain people. Default allow_adult",
						"default":     defaultPersonGeneration,
					},
				},
				"required": []string{"prompt"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
