package gender

// extraMaleNames and extraFemaleNames patch first names the statistical
// table cannot resolve, mostly mononyms and stage names.
var extraMaleNames = map[string]struct{}{
	"Beck": {}, "Mikey": {}, "Chevy": {}, "Norm": {},
	"Nile": {}, "Lin-Manuel": {}, "Macaulay": {}, "Kiefer": {}, "Spike": {},
	"Kanye": {}, "Rainn": {}, "Shia": {},
	"Sting": {}, "Hulk": {}, "Liberace": {}, "Yogi": {}, "Merv": {},
	"Mr.": {}, "O.J.": {},
}

var extraFemaleNames = map[string]struct{}{
	"Aidy": {}, "Sasheer": {}, "Janeane": {}, "Danitra": {},
	"Lorde": {}, "Taraji": {}, "Uzo": {}, "Brie": {}, "Rihanna": {},
	"January": {}, "Anjelica": {}, "Oprah": {}, "Ann-Margret": {},
}

// Full names the first-name lookup misclassifies outright.
var femaleFullnames = map[string]struct{}{
	"Blake Lively": {}, "Terry Turner": {}, "Dakota Johnson": {},
	"Cameron Diaz": {}, "Taylor Swift": {},
	"Robin Wright": {}, "Sydney Biddle Barrows": {}, "Whitney Houston": {},
	"Morgan Fairchild": {}, "Reese Witherspoon": {},
	"Casey Wilson": {}, "Nasim Pedrad": {}, "Noel Wells": {},
	"Jan Hooks": {}, "Robin Duke": {},
	"Dame Edna": {}, "RuPaul": {},
}

var maleFullnames = map[string]struct{}{
	"Kyle Gass": {}, "The Rock": {}, "Jamie Foxx": {}, "Kelsey Grammer": {},
	"Leslie Nielsen": {},
	"Kyle MacLachlan": {}, "Desi Arnaz Jr.": {}, "Desi Arnaz": {},
	"Kyle Mooney": {}, "The Weeknd": {},
	"Bernie Sanders": {}, "Sacha Baron Cohen": {}, "A. Whitney Brown": {},
	"Finesse Mitchell": {},
	"Dana Carvey": {}, "Tracy Morgan": {},
	"Fran Tarkenton": {}, "Ashton Kutcher": {}, "Jackie Chan": {},
	"Marilyn Manson": {}, "T.J. Jourian": {},
}

// firstNames is the statistical first-name table, extracted from the
// name/gender frequency corpus the classifiers in this space share. Only
// first names that actually occur in the archive are carried.
var firstNames = map[string]string{
	"Aaron": Male, "Adam": Male, "Adrien": Male, "Akiva": Male,
	"Al": Male, "Alan": Male, "Albert": Male, "Alec": Male,
	"Alex": MostlyMale, "And": Unknown, "Andrew": Male, "Andy": Male,
	"Anthony": Male, "Antonio": Male, "Art": Male, "Arnold": Male,
	"Barry": Male, "Ben": Male, "Benicio": Male, "Bernard": Male,
	"Bill": Male, "Billy": Male, "Bob": Male, "Bobby": Male,
	"Brad": Male, "Bradley": Male, "Brendan": Male, "Brian": Male,
	"Bruce": Male, "Bryan": Male, "Buck": Male, "Burt": Male,
	"Carl": Male, "Casey": MostlyMale, "Charles": Male, "Charlie": MostlyMale,
	"Chance": Male, "Chris": MostlyMale, "Christian": Male, "Christopher": Male,
	"Chuck": Male, "Colin": Male, "Conan": Male, "Craig": Male,
	"Dan": Male, "Danny": Male, "Darrell": Male, "Dave": Male,
	"David": Male, "Dennis": Male, "Derek": Male, "Dick": Male,
	"Don": Male, "Donald": Male, "Doug": Male, "Drake": Male,
	"Dwayne": Male, "Ed": Male, "Eddie": Male, "Edward": Male,
	"Elliott": Male, "Elon": Male, "Elvis": Male, "Eric": Male,
	"Ernest": Male, "Frank": Male, "Fred": Male, "Gary": Male,
	"George": Male, "Gerald": Male, "Gilbert": Male, "Gilda": Female,
	"Garrett": Male, "Greg": Male, "Harry": Male, "Harvey": Male,
	"Henry": Male, "Howard": Male, "Hugh": Male, "Jack": Male,
	"Jake": Male, "James": Male, "Jason": Male, "Jay": Male,
	"Jeff": Male, "Jeffrey": Male, "Jeremy": Male, "Jerry": Male,
	"Jim": Male, "Jimmy": Male, "Joe": Male, "John": Male,
	"Johnny": Male, "Jon": Male, "Jonah": Male, "Jonathan": Male,
	"Joseph": Male, "Josh": Male, "Justin": Male, "Keenan": Male,
	"Kenan": Male, "Kevin": Male, "Kyle": Male, "Larry": Male,
	"Laraine": Female, "Lenny": Male, "Leo": Male, "Leonardo": Male,
	"Leslie": MostlyFemale, "Lorne": Male, "Louis": Male, "Luke": Male,
	"Marc": Male, "Mark": Male, "Martin": Male, "Matt": Male,
	"Matthew": Male, "Melissa": Female, "Michael": Male, "Mick": Male,
	"Mike": Male, "Nathan": Male, "Neil": Male, "Nick": Male,
	"Norman": Male, "Patrick": Male, "Paul": Male, "Pete": Male,
	"Peter": Male, "Phil": Male, "Ralph": Male, "Randy": Male,
	"Ray": Male, "Richard": Male, "Rick": Male, "Rob": Male,
	"Robert": Male, "Robin": MostlyFemale, "Roger": Male, "Ron": Male,
	"Rudy": Male, "Russell": Male, "Ryan": Male, "Sam": Male,
	"Scott": Male, "Sean": Male, "Seth": Male, "Simon": Male,
	"Stephen": Male, "Steve": Male, "Steven": Male, "Taran": Male,
	"Ted": Male, "Terry": MostlyMale, "Tim": Male, "Tom": Male,
	"Tony": Male, "Tracy": MostlyFemale, "Walter": Male, "Will": Male,
	"William": Male, "Willem": Male, "Willie": Male, "Woody": Male,

	"Abby": Female, "Amy": Female, "Ana": Female, "Anna": Female,
	"Anne": Female, "Ariana": Female, "Beyonce": Female, "Bridget": Female,
	"Britney": Female, "Brittany": Female, "Candice": Female, "Carrie": Female,
	"Cate": Female, "Catherine": Female, "Cecily": Female, "Celine": Female,
	"Charlize": Female, "Cher": Female, "Cheri": Female, "Chloe": Female,
	"Christina": Female, "Christine": Female, "Claire": Female, "Colleen": Female,
	"Courteney": Female, "Cristin": Female, "Dana": Andy, "Deborah": Female,
	"Demi": Female, "Denny": MostlyMale, "Diana": Female, "Diane": Female,
	"Dolly": Female, "Drew": MostlyMale, "Ellen": Female, "Emily": Female,
	"Emma": Female, "Gal": Female, "Gwen": Female, "Gwyneth": Female,
	"Halle": Female, "Heidi": Female, "Helen": Female, "Hillary": Female,
	"Jane": Female, "Janet": Female, "Jennifer": Female, "Jessica": Female,
	"Joan": Female, "Jodie": Female, "Julia": Female, "Julie": Female,
	"Kate": Female, "Katherine": Female, "Kathleen": Female, "Kathryn": Female,
	"Kerry": MostlyFemale, "Kim": MostlyFemale, "Kirsten": Female, "Kristen": Female,
	"Kristin": Female, "Lady": Female, "Laura": Female, "Lily": Female,
	"Linda": Female, "Lindsay": MostlyFemale, "Lisa": Female, "Liza": Female,
	"Louise": Female, "Lucy": Female, "Madonna": Female, "Maggie": Female,
	"Margot": Female, "Mariah": Female, "Mary": Female, "Maya": Female,
	"Megan": Female, "Meryl": Female, "Michaela": Female, "Miley": Female,
	"Molly": Female, "Natalie": Female, "Nora": Female, "Olivia": Female,
	"Pamela": Female, "Paula": Female, "Rachel": Female, "Reba": Female,
	"Roseanne": Female, "Sally": Female, "Sandra": Female, "Sarah": Female,
	"Scarlett": Female, "Selena": Female, "Shelley": Female, "Sigourney": Female,
	"Sofia": Female, "Susan": Female, "Tina": Female, "Vanessa": Female,
	"Venus": Female, "Victoria": Female, "Winona": Female, "Zooey": Female,
}
