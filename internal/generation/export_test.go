package generation

type GenerateRequest = generateRequest
